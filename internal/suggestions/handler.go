package suggestions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

var validate = validator.New()

type suggestRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,max=200000"`
	JobDescription string `json:"job_description" validate:"required,max=50000"`
}

// Handler exposes the analysis endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches suggestion routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/suggestions", h.suggest)
	rg.POST("/resumes/:id/apply-suggestion", h.apply)
}

func (h *Handler) suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume_text and job_description are required", err.Error())
		return
	}

	res, err := h.Svc.Analyze(c.Request.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "resume_text and job_description are required", nil)
			return
		}
		respond.FromError(c, err)
		return
	}
	respond.OK(c, res)
}

// apply rewrites weak action verbs in a stored resume.
func (h *Handler) apply(c *gin.Context) {
	id, ok := resumes.ResumeID(c)
	if !ok {
		return
	}
	applied, err := h.Svc.ApplyToResume(c.Request.Context(), middleware.UserIDFromContext(c), id)
	switch {
	case err == nil:
		respond.OK(c, applied)
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrNothingToApply):
		respond.Error(c, http.StatusUnprocessableEntity, "nothing_to_apply", "add a summary or achievement with a weak verb such as \"Managed\"", nil)
	default:
		respond.FromError(c, err)
	}
}
