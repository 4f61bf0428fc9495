package exports

import "time"

// Export records a rendered resume file kept in object storage. Exports are
// keyed by the hash of the content they were rendered from.
type Export struct {
	ID          string    `json:"id"`
	ResumeID    int64     `json:"resume_id"`
	UserID      string    `json:"user_id"`
	Format      string    `json:"format"`
	ContentHash string    `json:"content_hash"`
	StorageKey  string    `json:"storage_key"`
	FileName    string    `json:"file_name"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}
