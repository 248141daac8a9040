package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-quality/internal/shared/apperr"
	"resume-quality/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if workflowID := c.Param("id"); workflowID != "" {
		fields["workflow_id"] = workflowID
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// FromError maps a categorised error onto the standard envelope. Uncategorised
// errors become a 500 carrying fallback as the message.
func FromError(c *gin.Context, err error, fallback string) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		var details interface{}
		if len(verr.Fields) > 0 {
			details = verr.Fields
		}
		Error(c, http.StatusBadRequest, "validation_error", verr.Error(), details)
	case errors.Is(err, apperr.ErrValidation):
		Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, apperr.ErrNotFound):
		Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, apperr.ErrConflict):
		Error(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		telemetry.Error("http.internal_error", map[string]any{
			"request_id": c.GetString("requestId"),
			"path":       c.Request.URL.Path,
			"err":        err,
		})
		Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
