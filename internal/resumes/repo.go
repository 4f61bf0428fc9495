package resumes

import "context"

// Repo defines persistence operations for resumes. Lookups are scoped to the
// owning user; a resume owned by someone else reports ErrNotFound.
type Repo interface {
	Create(ctx context.Context, resume Resume) (int64, error)
	Update(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID string, id int64) (Resume, error)
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]Resume, error)
	SetArchived(ctx context.Context, userID string, id int64, archived bool) error
}
