package exports

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/export"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes/:id/export", h.download)
	rg.GET("/resumes/:id/exports", h.list)
	rg.POST("/resumes/:id/exports", h.prepare)
}

func (h *Handler) download(c *gin.Context) {
	id, ok := resumes.ResumeID(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), gin.H{"allowed": []string{"pdf", "docx"}})
		return
	}

	res, err := h.Svc.Export(c.Request.Context(), middleware.UserIDFromContext(c), id, format)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("X-Export-Cached", strconv.FormatBool(res.Cached))
	respond.Attachment(c, res.Export.FileName, res.ContentType, res.Data)
}

type exportSummary struct {
	Format    string `json:"format"`
	FileName  string `json:"file_name"`
	SizeBytes int64  `json:"size_bytes"`
	Cached    bool   `json:"cached"`
}

// prepare renders every format ahead of download.
func (h *Handler) prepare(c *gin.Context) {
	id, ok := resumes.ResumeID(c)
	if !ok {
		return
	}
	results, err := h.Svc.ExportAll(c.Request.Context(), middleware.UserIDFromContext(c), id, []export.Format{export.FormatPDF, export.FormatDOCX})
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]exportSummary, 0, len(results))
	for _, r := range results {
		out = append(out, exportSummary{Format: r.Export.Format, FileName: r.Export.FileName, SizeBytes: r.Export.SizeBytes, Cached: r.Cached})
	}
	respond.OK(c, out)
}

func (h *Handler) list(c *gin.Context) {
	id, ok := resumes.ResumeID(c)
	if !ok {
		return
	}
	list, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, list)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidFormat):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "export_failed", "failed to export resume", nil)
	}
}
