package documents

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID string    `json:"documentId"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	TextLength int       `json:"textLength"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type importRequest struct {
	DocumentID string `json:"document_id" validate:"omitempty,uuid"`
	Text       string `json:"text" validate:"required_without=DocumentID,max=200000"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: doc.ID,
		FileName:   doc.FileName,
		MimeType:   doc.MimeType,
		SizeBytes:  doc.SizeBytes,
		TextLength: len([]rune(doc.ExtractedText)),
		UploadedAt: doc.CreatedAt,
	}
}
