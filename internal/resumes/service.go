package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/document"
	"resume-builder/resume/preview"
)

const maxTitleLength = 255

// SaveInput is a create-or-update request. A nil ResumeID creates a resume.
type SaveInput struct {
	Title    string
	Content  string
	ResumeID *int64
}

// Service contains business logic for stored resumes.
type Service struct {
	Repo Repo
	IDs  document.IDGenerator
	Now  func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Save validates content against the resume schema, then creates or updates
// the resume and returns the stored record.
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (Resume, error) {
	if userID == "" {
		return Resume{}, ErrInvalidInput
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = document.DefaultTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return Resume{}, fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, maxTitleLength)
	}
	if strings.TrimSpace(in.Content) == "" {
		return Resume{}, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if err := document.ValidateContent(in.Content); err != nil {
		return Resume{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now := s.now()
	resume := Resume{
		UserID:    userID,
		Title:     title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if in.ResumeID == nil {
		id, err := s.Repo.Create(ctx, resume)
		if err != nil {
			return Resume{}, fmt.Errorf("create resume: %w", err)
		}
		resume.ID = id
	} else {
		resume.ID = *in.ResumeID
		if err := s.Repo.Update(ctx, resume); err != nil {
			if errors.Is(err, ErrNotFound) {
				return Resume{}, ErrNotFound
			}
			return Resume{}, fmt.Errorf("update resume: %w", err)
		}
	}

	metrics.IncResumesSaved()
	telemetry.Info("resumes.saved", map[string]any{
		"user_id":   userID,
		"resume_id": resume.ID,
		"created":   in.ResumeID == nil,
		"bytes":     len(in.Content),
	})
	return resume, nil
}

// Get returns an owned resume.
func (s *Service) Get(ctx context.Context, userID string, id int64) (Resume, error) {
	if userID == "" || id <= 0 {
		return Resume{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns the user's resumes most recently updated first.
func (s *Service) List(ctx context.Context, userID string, opts ListOptions) ([]Resume, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, opts)
}

// Archive sets or clears the archived flag.
func (s *Service) Archive(ctx context.Context, userID string, id int64, archived bool) (Resume, error) {
	if err := s.Repo.SetArchived(ctx, userID, id, archived); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// Document loads an owned resume and decodes its content for rendering.
func (s *Service) Document(ctx context.Context, userID string, id int64) (Resume, document.Resume, error) {
	resume, err := s.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, document.Resume{}, err
	}
	ids := s.IDs
	if ids == nil {
		ids = document.UUIDGenerator{}
	}
	return resume, document.Load(resume.Content, ids), nil
}

// Preview renders the resume as standalone preview HTML.
func (s *Service) Preview(ctx context.Context, userID string, id int64) (string, error) {
	_, doc, err := s.Document(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return preview.Render(doc)
}
