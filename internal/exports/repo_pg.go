package exports

import (
	"context"
	"database/sql"
	"errors"

	"research-backend/research/render"
)

// PGRepo implements ExportsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new export row.
func (r *PGRepo) Create(ctx context.Context, export Export) error {
	const query = `
INSERT INTO exports (
    id,
    note_id,
    storage_key,
    file_url,
    file_name,
    format,
    size_bytes,
    page_count,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		export.ID,
		export.NoteID,
		export.StorageKey,
		export.FileURL,
		export.FileName,
		string(export.Format),
		export.SizeBytes,
		export.PageCount,
		export.CreatedAt,
	)
	return err
}

const selectExport = `
SELECT id, note_id, storage_key, file_url, file_name, format, size_bytes, page_count, created_at
FROM exports`

// Get fetches an export by ID.
func (r *PGRepo) Get(ctx context.Context, id string) (Export, error) {
	export, err := scanExport(r.DB.QueryRowContext(ctx, selectExport+`
WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Export{}, ErrNotFound
		}
		return Export{}, err
	}
	return export, nil
}

// ListByNote lists a note's exports newest first.
func (r *PGRepo) ListByNote(ctx context.Context, noteID string) ([]Export, error) {
	rows, err := r.DB.QueryContext(ctx, selectExport+`
WHERE note_id = $1
ORDER BY created_at DESC`, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Export{}
	for rows.Next() {
		export, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, export)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExport(row rowScanner) (Export, error) {
	var export Export
	var format string
	if err := row.Scan(
		&export.ID,
		&export.NoteID,
		&export.StorageKey,
		&export.FileURL,
		&export.FileName,
		&format,
		&export.SizeBytes,
		&export.PageCount,
		&export.CreatedAt,
	); err != nil {
		return Export{}, err
	}
	export.Format = render.Format(format)
	return export, nil
}
