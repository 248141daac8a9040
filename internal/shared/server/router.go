package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-quality/internal/bootstrap"
	"resume-quality/internal/shared/metrics"
	"resume-quality/internal/shared/server/middleware"
	"resume-quality/internal/shared/server/respond"
)

const (
	rateGroupAnalyze  = "ANALYZE"
	rateGroupDefault  = "DEFAULT"
	rateGroupExempt   = "EXEMPT"
	defaultGroupScale = 4
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	cfg := app.Config

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.BodyLimit(cfg.MaxBodyBytes()),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				rateGroupAnalyze: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
				rateGroupDefault: {Rate: cfg.RateLimitRPS * defaultGroupScale, Burst: cfg.RateLimitBurst * defaultGroupScale},
			},
			DefaultGroup: rateGroupDefault,
			GroupFor:     rateGroupFor,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := app.Health.Status(c.Request.Context())
		code := http.StatusOK
		if ok, _ := status["ok"].(bool); !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	app.AnalysesHandler.RegisterRoutes(api)
	app.WorkflowsHandler.RegisterRoutes(api)

	return r
}

// rateGroupFor buckets analysis calls apart from cheap workflow reads and
// leaves probes unlimited.
func rateGroupFor(c *gin.Context) string {
	path := c.Request.URL.Path
	switch {
	case path == "/metrics" || path == "/api/v1/health":
		return rateGroupExempt
	case strings.HasPrefix(path, "/api/v1/analyze"):
		return rateGroupAnalyze
	default:
		return rateGroupDefault
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
