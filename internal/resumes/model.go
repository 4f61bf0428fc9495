package resumes

import "time"

// Resume is a stored resume. Content holds the serialized editor document.
type Resume struct {
	ID         int64
	UserID     string
	Title      string
	Content    string
	IsArchived bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ListOptions filters a user's resume list.
type ListOptions struct {
	IncludeArchived bool
	Limit           int
	Offset          int
}
