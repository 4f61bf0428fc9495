package exports

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores export records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	byResume map[int64][]Export
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byResume: make(map[int64][]Export)}
}

// Create stores the record unless one exists for the same content and format.
func (r *MemoryRepo) Create(ctx context.Context, exp Export) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byResume[exp.ResumeID] {
		if existing.Format == exp.Format && existing.ContentHash == exp.ContentHash {
			return nil
		}
	}
	r.byResume[exp.ResumeID] = append(r.byResume[exp.ResumeID], exp)
	return nil
}

// FindByHash returns the export rendered from contentHash.
func (r *MemoryRepo) FindByHash(ctx context.Context, resumeID int64, format, contentHash string) (Export, error) {
	if err := ctx.Err(); err != nil {
		return Export{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, exp := range r.byResume[resumeID] {
		if exp.Format == format && exp.ContentHash == contentHash {
			return exp, nil
		}
	}
	return Export{}, ErrNotFound
}

// ListByResume returns the user's exports of a resume, newest first.
func (r *MemoryRepo) ListByResume(ctx context.Context, userID string, resumeID int64) ([]Export, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := []Export{}
	for _, exp := range r.byResume[resumeID] {
		if exp.UserID == userID {
			out = append(out, exp)
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
