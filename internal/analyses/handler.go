package analyses

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-quality/internal/extract"
	"resume-quality/internal/match"
	"resume-quality/internal/shared/apperr"
	"resume-quality/internal/shared/server/middleware"
	"resume-quality/internal/shared/server/respond"
	"resume-quality/internal/shared/telemetry"
	"resume-quality/internal/shared/util"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.POST("/analyze/batch", h.analyzeBatch)
	rg.POST("/analyze/upload", h.analyzeUpload)
}

func (h *Handler) analyze(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}
	c.Set("documentType", req.DocumentType)

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	out, err := h.Svc.Analyze(ctx, req)
	if err != nil {
		respond.FromError(c, err, "failed to analyze document")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) analyzeBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	results, err := h.Svc.AnalyzeBatch(ctx, req)
	if err != nil {
		respond.FromError(c, err, "failed to analyze documents")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"results": results})
}

func (h *Handler) analyzeUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", []map[string]string{
			{"field": "file", "issue": "required"},
		})
		return
	}
	if limit := int64(h.Svc.maxBytes()); fileHeader.Size > limit*4 {
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "uploaded file is too large", nil)
		return
	}
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", []map[string]string{
			{"field": "file", "issue": "invalid_name"},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.FromError(c, fmt.Errorf("open upload: %w", err), "failed to read upload")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.FromError(c, fmt.Errorf("read upload: %w", err), "failed to read upload")
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	text, err := extract.Text(ctx, data, fileHeader.Header.Get("Content-Type"), fileName)
	if err != nil {
		respond.FromError(c, err, "failed to extract document text")
		return
	}
	telemetry.Info("analysis.upload_extracted", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"file_name":  fileName,
		"bytes":      len(data),
		"chars":      len(text),
	})

	req := Request{
		Text:         text,
		DocumentType: c.PostForm("documentType"),
	}
	keywords := splitList(c.PostForm("keywords"))
	description := strings.TrimSpace(c.PostForm("jobDescription"))
	if len(keywords) > 0 || description != "" {
		req.Job = &match.JobContext{Keywords: keywords, Description: description}
	}
	if raw := strings.TrimSpace(c.PostForm("readabilityScore")); raw != "" {
		score, err := strconv.Atoi(raw)
		if err != nil {
			respond.FromError(c, apperr.Invalid("readabilityScore", "must be an integer"), "")
			return
		}
		req.ReadabilityScore = &score
	}
	c.Set("documentType", req.DocumentType)

	out, err := h.Svc.Analyze(ctx, req)
	if err != nil {
		respond.FromError(c, err, "failed to analyze document")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

// splitList splits a comma separated form value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
