package exports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/cache"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
	"resume-builder/resume/document"
	"resume-builder/resume/export"
)

const (
	cacheTTL      = 7 * 24 * time.Hour
	renderTimeout = 2 * time.Minute
)

// ResumeSource loads an owned resume and its decoded document.
type ResumeSource interface {
	Document(ctx context.Context, userID string, id int64) (resumes.Resume, document.Resume, error)
}

// Result is a rendered or cached export file.
type Result struct {
	Export      Export
	ContentType string
	Data        []byte
	Cached      bool
}

// Service renders resumes into files and keeps the results in object storage.
// Identical content is rendered once per format.
type Service struct {
	Resumes   ResumeSource
	Repo      Repo
	Store     object.ObjectStore
	Cache     cache.Cache
	Exporters map[export.Format]export.Exporter
	Now       func() time.Time

	group singleflight.Group
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Export returns the resume rendered in format, reusing a stored file when
// the resume content has not changed since it was rendered.
func (s *Service) Export(ctx context.Context, userID string, resumeID int64, format export.Format) (Result, error) {
	exporter, ok := s.Exporters[format]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}

	resume, doc, err := s.Resumes.Document(ctx, userID, resumeID)
	if err != nil {
		return Result{}, err
	}

	hash := util.ContentHash([]byte(string(format) + "\x00" + resume.Title + "\x00" + resume.Content))
	key := object.ExportKey(userID, resumeID, hash, exporter.Extension())

	// The shared render outlives any single caller; each caller only stops waiting.
	ch := s.group.DoChan(key, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), renderTimeout)
		defer cancel()
		if res, ok := s.lookup(rctx, key, resumeID, string(format), hash, exporter); ok {
			return res, nil
		}
		return s.render(rctx, resume, doc, format, exporter, key, hash)
	})
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			metrics.IncExportsFailed()
			return Result{}, r.Err
		}
		return r.Val.(Result), nil
	}
}

// ExportAll renders several formats concurrently.
func (s *Service) ExportAll(ctx context.Context, userID string, resumeID int64, formats []export.Format) ([]Result, error) {
	results := make([]Result, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			res, err := s.Export(gctx, userID, resumeID, format)
			if err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// List returns recorded exports of an owned resume.
func (s *Service) List(ctx context.Context, userID string, resumeID int64) ([]Export, error) {
	if _, _, err := s.Resumes.Document(ctx, userID, resumeID); err != nil {
		return nil, err
	}
	return s.Repo.ListByResume(ctx, userID, resumeID)
}

func (s *Service) lookup(ctx context.Context, key string, resumeID int64, format, hash string, exporter export.Exporter) (Result, bool) {
	var exp Export
	found := false
	if s.Cache != nil {
		if ok, err := s.Cache.GetJSON(ctx, cacheKey(key), &exp); err == nil && ok {
			found = true
		}
	}
	if !found {
		rec, err := s.Repo.FindByHash(ctx, resumeID, format, hash)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				telemetry.Warn("exports.lookup_failed", map[string]any{"resume_id": resumeID, "error": err})
			}
			return Result{}, false
		}
		exp = rec
	}

	data, err := object.ReadAll(ctx, s.Store, exp.StorageKey)
	if err != nil {
		if !errors.Is(err, object.ErrNotFound) {
			telemetry.Warn("exports.read_failed", map[string]any{"key": exp.StorageKey, "error": err})
		}
		return Result{}, false
	}
	if s.Cache != nil {
		_ = s.Cache.SetJSON(ctx, cacheKey(key), exp, cacheTTL)
	}
	metrics.IncExportCacheHits()
	return Result{Export: exp, ContentType: exporter.ContentType(), Data: data, Cached: true}, true
}

func (s *Service) render(ctx context.Context, resume resumes.Resume, doc document.Resume, format export.Format, exporter export.Exporter, key, hash string) (Result, error) {
	start := time.Now()
	data, err := exporter.Export(ctx, doc)
	if err != nil {
		telemetry.Error("exports.render_failed", map[string]any{
			"resume_id": resume.ID,
			"format":    format,
			"error":     err,
		})
		return Result{}, fmt.Errorf("render %s: %w", format, err)
	}
	elapsed := time.Since(start)
	metrics.ObserveExportDuration(elapsed)

	size, err := s.Store.Put(ctx, key, exporter.ContentType(), bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("store export: %w", err)
	}

	exp := Export{
		ID:          uuid.NewString(),
		ResumeID:    resume.ID,
		UserID:      resume.UserID,
		Format:      string(format),
		ContentHash: hash,
		StorageKey:  key,
		FileName:    export.Filename(resume.Title, exporter.Extension()),
		SizeBytes:   size,
		CreatedAt:   s.now(),
	}
	if err := s.Repo.Create(ctx, exp); err != nil {
		return Result{}, fmt.Errorf("record export: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, cacheKey(key), exp, cacheTTL); err != nil {
			telemetry.Warn("exports.cache_set_failed", map[string]any{"error": err})
		}
	}

	metrics.IncExports()
	telemetry.Info("exports.rendered", map[string]any{
		"resume_id":   resume.ID,
		"format":      format,
		"size_bytes":  size,
		"duration_ms": elapsed.Milliseconds(),
	})
	return Result{Export: exp, ContentType: exporter.ContentType(), Data: data}, nil
}

func cacheKey(storageKey string) string {
	return "export:" + storageKey
}
