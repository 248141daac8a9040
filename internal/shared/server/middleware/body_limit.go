package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-quality/internal/shared/server/respond"
)

// BodyLimit rejects requests whose declared length exceeds limit and caps the
// reader for the rest, so oversized chunked bodies fail while binding.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body is too large", map[string]int64{
				"limitBytes": limit,
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
