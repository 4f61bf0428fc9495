package suggestions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/document"
)

// ErrNothingToApply is returned when the target text has no weak verbs, or
// the resume has neither a summary nor an achievement to rewrite.
var ErrNothingToApply = errors.New("nothing to apply")

// Applied describes the field an applied suggestion rewrote.
type Applied struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// ApplyActionVerbs rewrites weak verbs in the summary, or in the first
// achievement of the first experience when the summary is empty.
func ApplyActionVerbs(store *document.Store) (Applied, error) {
	var applied Applied
	err := store.Update(func(doc *document.Resume) error {
		if strings.TrimSpace(doc.Summary) != "" {
			rewritten := RewriteActionVerbs(doc.Summary)
			if rewritten == doc.Summary {
				return ErrNothingToApply
			}
			doc.Summary = rewritten
			applied = Applied{Path: "summary", Value: rewritten}
			return nil
		}
		if len(doc.Experiences) == 0 || len(doc.Experiences[0].Achievements) == 0 {
			return ErrNothingToApply
		}
		first := doc.Experiences[0].Achievements[0]
		rewritten := RewriteActionVerbs(first)
		if rewritten == first {
			return ErrNothingToApply
		}
		doc.Experiences[0].Achievements[0] = rewritten
		applied = Applied{Path: "experiences[0].achievements[0]", Value: rewritten}
		return nil
	})
	return applied, err
}

// ResumeEditor loads and stores owned resumes.
type ResumeEditor interface {
	Document(ctx context.Context, userID string, id int64) (resumes.Resume, document.Resume, error)
	Save(ctx context.Context, userID string, in resumes.SaveInput) (resumes.Resume, error)
}

// ApplyToResume rewrites weak verbs in a stored resume and saves it back.
func (s *Service) ApplyToResume(ctx context.Context, userID string, resumeID int64) (Applied, error) {
	if s.Resumes == nil {
		return Applied{}, errors.New("resume storage not configured")
	}
	resume, doc, err := s.Resumes.Document(ctx, userID, resumeID)
	if err != nil {
		return Applied{}, err
	}

	store := document.NewStore(doc, nil)
	applied, err := ApplyActionVerbs(store)
	if err != nil {
		return Applied{}, err
	}

	next := store.Snapshot()
	next.PrepareForSave()
	content, err := document.Serialize(next)
	if err != nil {
		return Applied{}, err
	}
	if _, err := s.Resumes.Save(ctx, userID, resumes.SaveInput{
		Title:    resume.Title,
		Content:  content,
		ResumeID: &resume.ID,
	}); err != nil {
		return Applied{}, fmt.Errorf("save rewritten resume: %w", err)
	}

	telemetry.Info("suggestions.applied", map[string]any{
		"user_id":   userID,
		"resume_id": resume.ID,
		"path":      applied.Path,
	})
	return applied, nil
}
