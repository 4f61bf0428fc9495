package resumes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/client"
	"resume-builder/resume/document"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/save", h.save)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.POST("/resumes/:id/archive", h.archive)
	rg.GET("/resumes/:id/preview", h.preview)
}

// save answers with the editor's {success, message, resume_id, error} contract
// for every outcome, including failures.
func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req client.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		saveFailed(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		req.Title = document.DefaultTitle
	}
	if err := validate.Struct(req); err != nil {
		saveFailed(c, http.StatusBadRequest, "Title and content are required")
		return
	}
	if req.ResumeID != nil {
		c.Set("resumeId", *req.ResumeID)
	}

	resume, err := h.Svc.Save(c.Request.Context(), userID, SaveInput{
		Title:    req.Title,
		Content:  req.Content,
		ResumeID: req.ResumeID,
	})
	if err != nil {
		var verr *document.ValidationError
		switch {
		case errors.Is(err, ErrNotFound):
			saveFailed(c, http.StatusNotFound, "Resume not found")
		case errors.As(err, &verr):
			saveFailed(c, http.StatusUnprocessableEntity, verr.Error())
		case errors.Is(err, ErrInvalidInput):
			saveFailed(c, http.StatusBadRequest, err.Error())
		default:
			telemetry.Error("resumes.save_failed", map[string]any{
				"request_id": middleware.RequestIDFromContext(c),
				"user_id":    userID,
				"error":      err,
			})
			saveFailed(c, http.StatusInternalServerError, "Failed to save resume")
		}
		return
	}

	c.Set("resumeId", resume.ID)
	id := resume.ID
	respond.OK(c, client.SaveResponse{
		Success:  true,
		Message:  "Resume saved successfully",
		ResumeID: &id,
	})
}

func saveFailed(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, client.SaveResponse{Success: false, Error: message})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	opts := ListOptions{Limit: 20}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v >= 0 {
		opts.Limit = min(v, 100)
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		opts.Offset = v
	}
	opts.IncludeArchived, _ = strconv.ParseBool(c.Query("include_archived"))

	list, err := h.Svc.List(c.Request.Context(), userID, opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]ResumeSummary, 0, len(list))
	for _, r := range list {
		out = append(out, toSummary(r))
	}
	respond.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := resumeID(c)
	if !ok {
		return
	}
	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, toResponse(resume))
}

func (h *Handler) archive(c *gin.Context) {
	id, ok := resumeID(c)
	if !ok {
		return
	}
	archived := true
	var req archiveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
		if req.Archived != nil {
			archived = *req.Archived
		}
	}

	resume, err := h.Svc.Archive(c.Request.Context(), middleware.UserIDFromContext(c), id, archived)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, toSummary(resume))
}

func (h *Handler) preview(c *gin.Context) {
	id, ok := resumeID(c)
	if !ok {
		return
	}
	html, err := h.Svc.Preview(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// resumeID parses the :id path parameter, writing a 400 on failure.
func resumeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid resume id", nil)
		return 0, false
	}
	c.Set("resumeId", id)
	return id, true
}

// ResumeID exposes path parsing to routes registered by other packages.
func ResumeID(c *gin.Context) (int64, bool) {
	return resumeID(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.FromError(c, err)
	}
}
