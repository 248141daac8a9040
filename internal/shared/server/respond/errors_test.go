package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-quality/internal/shared/apperr"
	"resume-quality/internal/shared/telemetry"
)

func TestFromErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	defer telemetry.SetOutput(io.Discard)()

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation with fields", apperr.Invalid("changes", "required"), http.StatusBadRequest, "validation_error"},
		{"wrapped validation", fmt.Errorf("%w: bad json", apperr.ErrValidation), http.StatusBadRequest, "validation_error"},
		{"not found", fmt.Errorf("workflow wf-1: %w", apperr.ErrNotFound), http.StatusNotFound, "not_found"},
		{"conflict", fmt.Errorf("%w: workflow closed", apperr.ErrConflict), http.StatusConflict, "conflict"},
		{"internal", errors.New("db down"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			FromError(c, tc.err, "something failed")

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			var body ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error.Code != tc.code {
				t.Fatalf("code = %q, want %q", body.Error.Code, tc.code)
			}
			if tc.status == http.StatusInternalServerError && body.Error.Message != "something failed" {
				t.Fatalf("internal errors must not leak details, got %q", body.Error.Message)
			}
		})
	}
}
