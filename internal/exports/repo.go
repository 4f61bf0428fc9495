package exports

import "context"

// Repo defines persistence operations for export records.
type Repo interface {
	Create(ctx context.Context, exp Export) error
	FindByHash(ctx context.Context, resumeID int64, format, contentHash string) (Export, error)
	ListByResume(ctx context.Context, userID string, resumeID int64) ([]Export, error)
}
