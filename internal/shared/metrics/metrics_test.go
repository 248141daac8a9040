package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestHandlerExposesDomainMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ObserveAnalysis("resume", true, 82, 3*time.Millisecond)
	IncWorkflowCreated()
	IncWorkflowCompleted()
	AddDecisions("approved", 2)
	AddDecisions("error", 0)
	ObserveRequest(http.MethodPost, "/api/v1/analyze", http.StatusOK)

	router := gin.New()
	router.GET("/metrics", Handler())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`docqual_analyses_total{document_type="resume",outcome="pass"}`,
		"docqual_analysis_duration_seconds_bucket",
		"docqual_combined_score_count",
		"docqual_workflows_created_total",
		`docqual_workflow_decisions_total{outcome="approved"} 2`,
		`docqual_http_requests_total{method="POST",route="/api/v1/analyze",status="200"}`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %s", want)
		}
	}
	if strings.Contains(body, `outcome="error"`) {
		t.Fatalf("zero-count decision outcome should not be exported")
	}
}
