package exports

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"research-backend/research/render"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	export := Export{
		ID:         "e-1",
		NoteID:     "n-1",
		StorageKey: "abc/123_AAPL_research.pdf",
		FileURL:    downloadURL("e-1"),
		FileName:   "AAPL_research.pdf",
		Format:     render.FormatPDF,
		SizeBytes:  2048,
		PageCount:  2,
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO exports").
		WithArgs(
			export.ID,
			export.NoteID,
			export.StorageKey,
			export.FileURL,
			export.FileName,
			"pdf",
			export.SizeBytes,
			export.PageCount,
			export.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), export); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectQuery("FROM exports").
		WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "note_id", "storage_key", "file_url", "file_name", "format", "size_bytes", "page_count", "created_at"}).
			AddRow("e-1", "n-1", "k", "/api/v1/exports/e-1/download", "AAPL_research.md", "md", int64(10), 0, now))
	mock.ExpectQuery("FROM exports").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), "e-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Format != render.FormatMarkdown || got.SizeBytes != 10 {
		t.Fatalf("unexpected export %+v", got)
	}
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
