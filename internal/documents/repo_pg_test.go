package documents

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := Document{
		ID:            "doc-1",
		UserID:        "guest:1",
		FileName:      "cv.pdf",
		MimeType:      "application/pdf",
		SizeBytes:     42,
		StorageKey:    "uploads/abc/cv.pdf",
		ExtractedText: "Jane Doe",
		CreatedAt:     time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(doc.ID, doc.UserID, doc.FileName, doc.MimeType, doc.SizeBytes, doc.StorageKey, doc.ExtractedText, doc.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("guest:1", "missing").
		WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "guest:1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "file_name", "mime_type", "size_bytes", "storage_key", "extracted_text", "created_at"}).
		AddRow("doc-2", "guest:1", "b.txt", "text/plain", 3, "k2", "b", now).
		AddRow("doc-1", "guest:1", "a.txt", "text/plain", 3, "k1", "a", now.Add(-time.Hour))
	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("guest:1", 20, 0).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	docs, err := repo.ListByUser(context.Background(), "guest:1", 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "doc-2" {
		t.Fatalf("unexpected docs %+v", docs)
	}
}
