package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores resumes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[int64]Resume)}
}

// Create assigns the next id and stores the resume.
func (r *MemoryRepo) Create(ctx context.Context, resume Resume) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	resume.ID = r.nextID
	r.byID[resume.ID] = resume
	return resume.ID, nil
}

// Update replaces title and content of an owned resume.
func (r *MemoryRepo) Update(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[resume.ID]
	if !ok || existing.UserID != resume.UserID {
		return ErrNotFound
	}
	existing.Title = resume.Title
	existing.Content = resume.Content
	existing.UpdatedAt = resume.UpdatedAt
	r.byID[resume.ID] = existing
	return nil
}

// GetByID returns an owned resume.
func (r *MemoryRepo) GetByID(ctx context.Context, userID string, id int64) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[id]
	if !ok || resume.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// ListByUser returns resumes most recently updated first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, opts ListOptions) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := []Resume{}
	for _, resume := range r.byID {
		if resume.UserID != userID || (resume.IsArchived && !opts.IncludeArchived) {
			continue
		}
		out = append(out, resume)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return []Resume{}, nil
	}
	end := len(out)
	if opts.Limit > 0 && offset+opts.Limit < end {
		end = offset + opts.Limit
	}
	return out[offset:end], nil
}

// SetArchived toggles the archived flag of an owned resume.
func (r *MemoryRepo) SetArchived(ctx context.Context, userID string, id int64, archived bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.byID[id]
	if !ok || resume.UserID != userID {
		return ErrNotFound
	}
	resume.IsArchived = archived
	resume.UpdatedAt = time.Now().UTC()
	r.byID[id] = resume
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
