package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, title, content, is_archived, created_at, updated_at`

// Create inserts a resume and returns its generated id.
func (r *PGRepo) Create(ctx context.Context, resume Resume) (int64, error) {
	const query = `
INSERT INTO resumes (user_id, title, content, is_archived, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	var id int64
	err := r.DB.QueryRowContext(ctx, query,
		resume.UserID,
		resume.Title,
		resume.Content,
		resume.IsArchived,
		resume.CreatedAt,
		resume.UpdatedAt,
	).Scan(&id)
	return id, err
}

// Update replaces title and content of an owned resume.
func (r *PGRepo) Update(ctx context.Context, resume Resume) error {
	const query = `
UPDATE resumes
SET title = $1, content = $2, updated_at = $3
WHERE id = $4 AND user_id = $5`
	res, err := r.DB.ExecContext(ctx, query, resume.Title, resume.Content, resume.UpdatedAt, resume.ID, resume.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetByID returns an owned resume.
func (r *PGRepo) GetByID(ctx context.Context, userID string, id int64) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1 AND user_id = $2
LIMIT 1`
	var resume Resume
	err := r.DB.QueryRowContext(ctx, query, id, userID).Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Title,
		&resume.Content,
		&resume.IsArchived,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	return resume, err
}

// ListByUser lists resumes ordered by last update. Content is not loaded.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, opts ListOptions) ([]Resume, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, title, is_archived, created_at, updated_at
FROM resumes
WHERE user_id = $1 AND ($2 OR is_archived = FALSE)
ORDER BY updated_at DESC, id DESC
LIMIT $3 OFFSET $4`

	rows, err := r.DB.QueryContext(ctx, query, userID, opts.IncludeArchived, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		var resume Resume
		if err := rows.Scan(
			&resume.ID,
			&resume.UserID,
			&resume.Title,
			&resume.IsArchived,
			&resume.CreatedAt,
			&resume.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// SetArchived toggles the archived flag of an owned resume.
func (r *PGRepo) SetArchived(ctx context.Context, userID string, id int64, archived bool) error {
	const query = `
UPDATE resumes
SET is_archived = $1, updated_at = $2
WHERE id = $3 AND user_id = $4`
	res, err := r.DB.ExecContext(ctx, query, archived, time.Now().UTC(), id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
