package exports

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const exportColumns = `id, resume_id, user_id, format, content_hash, storage_key, file_name, size_bytes, created_at`

// Create inserts an export record. A concurrent render of the same content is a no-op.
func (r *PGRepo) Create(ctx context.Context, exp Export) error {
	const query = `
INSERT INTO resume_exports (` + exportColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (resume_id, format, content_hash) DO NOTHING`
	_, err := r.DB.ExecContext(ctx, query,
		exp.ID,
		exp.ResumeID,
		exp.UserID,
		exp.Format,
		exp.ContentHash,
		exp.StorageKey,
		exp.FileName,
		exp.SizeBytes,
		exp.CreatedAt,
	)
	return err
}

// FindByHash returns the export rendered from contentHash.
func (r *PGRepo) FindByHash(ctx context.Context, resumeID int64, format, contentHash string) (Export, error) {
	const query = `
SELECT ` + exportColumns + `
FROM resume_exports
WHERE resume_id = $1 AND format = $2 AND content_hash = $3
LIMIT 1`
	exp, err := scanExport(r.DB.QueryRowContext(ctx, query, resumeID, format, contentHash))
	if errors.Is(err, sql.ErrNoRows) {
		return Export{}, ErrNotFound
	}
	return exp, err
}

// ListByResume returns the user's exports of a resume, newest first.
func (r *PGRepo) ListByResume(ctx context.Context, userID string, resumeID int64) ([]Export, error) {
	const query = `
SELECT ` + exportColumns + `
FROM resume_exports
WHERE user_id = $1 AND resume_id = $2
ORDER BY created_at DESC
LIMIT 50`
	rows, err := r.DB.QueryContext(ctx, query, userID, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Export{}
	for rows.Next() {
		exp, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, exp)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExport(row rowScanner) (Export, error) {
	var exp Export
	err := row.Scan(
		&exp.ID,
		&exp.ResumeID,
		&exp.UserID,
		&exp.Format,
		&exp.ContentHash,
		&exp.StorageKey,
		&exp.FileName,
		&exp.SizeBytes,
		&exp.CreatedAt,
	)
	return exp, err
}

var _ Repo = (*PGRepo)(nil)
