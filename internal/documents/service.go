package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/extract"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/document"
	"resume-builder/resume/importer"
)

// Service stores uploaded resumes and converts them into editor documents.
type Service struct {
	Store    object.ObjectStore
	Repo     Repo
	Importer importer.TextImporter
	IDs      document.IDGenerator
	Now      func() time.Time
}

// ImportInput selects the text to import: a stored document or inline text.
type ImportInput struct {
	DocumentID string
	Text       string
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Upload extracts the file's text, saves the original to object storage and
// records the document.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	if userID == "" || strings.TrimSpace(fileName) == "" {
		return Document{}, ErrInvalidInput
	}

	sniffed, body, err := object.Sniff(r)
	if err != nil {
		return Document{}, err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	mimeType := extract.Normalize(sniffed, fileName, data)
	if !extract.Supported(mimeType) {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}

	text, err := extract.FromBytes(ctx, data, mimeType, fileName)
	if err != nil {
		telemetry.Warn("documents.extract_failed", map[string]any{
			"user_id":   userID,
			"mime_type": mimeType,
			"error":     err,
		})
		return Document{}, fmt.Errorf("%w: unable to read document text", ErrInvalidInput)
	}

	key, err := object.UploadKey(userID, fileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	size, err := s.Store.Put(ctx, key, mimeType, bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("store upload: %w", err)
	}

	doc := Document{
		ID:            uuid.NewString(),
		UserID:        userID,
		FileName:      fileName,
		MimeType:      mimeType,
		SizeBytes:     size,
		StorageKey:    key,
		ExtractedText: text,
		CreatedAt:     s.now(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	telemetry.Info("documents.uploaded", map[string]any{
		"user_id":     userID,
		"document_id": doc.ID,
		"mime_type":   mimeType,
		"size_bytes":  size,
	})
	return doc, nil
}

// Get returns a document owned by userID.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns the user's documents newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Import converts a stored document or inline text into a resume document.
func (s *Service) Import(ctx context.Context, userID string, in ImportInput) (document.Resume, error) {
	text := in.Text
	if in.DocumentID != "" {
		doc, err := s.Get(ctx, userID, in.DocumentID)
		if err != nil {
			return document.Resume{}, err
		}
		text = doc.ExtractedText
	}
	if strings.TrimSpace(text) == "" {
		return document.Resume{}, errors.Join(ErrInvalidInput, errors.New("no text to import"))
	}

	doc := importer.Import(ctx, text, s.Importer, s.IDs)
	metrics.IncResumesImported()
	return doc, nil
}
