package workflows

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-quality/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the workflow service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches workflow routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/workflows", h.create)
	rg.GET("/workflows/:id", h.get)
	rg.POST("/workflows/:id/decisions", h.submitDecisions)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}

	w, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		respond.FromError(c, err, "failed to create workflow")
		return
	}
	c.Set("workflowId", w.ID)
	respond.Created(c, c.FullPath()+"/"+w.ID, w)
}

func (h *Handler) get(c *gin.Context) {
	w, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.FromError(c, err, "failed to fetch workflow")
		return
	}
	respond.OK(c, w)
}

func (h *Handler) submitDecisions(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}

	result, err := h.Svc.SubmitDecisions(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respond.FromError(c, err, "failed to apply decisions")
		return
	}
	respond.OK(c, result)
}
