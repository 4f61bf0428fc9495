package resumes

import (
	"time"

	"github.com/go-playground/validator/v10"

	"resume-builder/resume/client"
)

var validate = validator.New()

// ResumeResponse is the full representation returned by GET /resumes/:id.
type ResumeResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	EditURL    string    `json:"edit_url"`
}

// ResumeSummary is a list entry without content.
type ResumeSummary struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	IsArchived bool      `json:"is_archived"`
	UpdatedAt  time.Time `json:"updated_at"`
	EditURL    string    `json:"edit_url"`
}

type archiveRequest struct {
	Archived *bool `json:"archived"`
}

func editURL(id int64) string {
	return client.EditLocation(id)
}

func toResponse(r Resume) ResumeResponse {
	return ResumeResponse{
		ID:         r.ID,
		Title:      r.Title,
		Content:    r.Content,
		IsArchived: r.IsArchived,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		EditURL:    editURL(r.ID),
	}
}

func toSummary(r Resume) ResumeSummary {
	return ResumeSummary{
		ID:         r.ID,
		Title:      r.Title,
		IsArchived: r.IsArchived,
		UpdatedAt:  r.UpdatedAt,
		EditURL:    editURL(r.ID),
	}
}
