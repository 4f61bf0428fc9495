package documents

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const defaultMaxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc           *Service
	MaxUploadSize int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadSize int64) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}
	return &Handler{Svc: svc, MaxUploadSize: maxUploadSize}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.POST("/documents/import", h.importResume)
	rg.GET("/documents", h.list)
	rg.GET("/documents/:id", h.get)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds upload limit", gin.H{"maxBytes": h.MaxUploadSize})
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Set("documentId", doc.ID)
	respond.Created(c, toResponse(doc))
}

func (h *Handler) importResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document_id or text is required", err.Error())
		return
	}
	if req.DocumentID != "" {
		c.Set("documentId", req.DocumentID)
	}

	doc, err := h.Svc.Import(c.Request.Context(), userID, ImportInput{DocumentID: req.DocumentID, Text: req.Text})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, doc)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	doc, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, toResponse(doc))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = v
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}

	docs, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.OK(c, resp)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	case errors.Is(err, ErrUnsupportedType):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type", "only PDF, DOCX and plain text files are supported", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.FromError(c, err)
	}
}
