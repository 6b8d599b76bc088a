package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements NotesRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// UpsertCompany inserts the company or returns the existing row with the same name.
func (r *PGRepo) UpsertCompany(ctx context.Context, company Company) (Company, error) {
	const query = `
INSERT INTO companies (id, name, ticker, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (name) DO UPDATE SET ticker = COALESCE(companies.ticker, EXCLUDED.ticker)
RETURNING id, name, ticker, created_at`

	var out Company
	var ticker sql.NullString
	err := r.DB.QueryRowContext(ctx, query, company.ID, company.Name, nullString(company.Ticker), company.CreatedAt).
		Scan(&out.ID, &out.Name, &ticker, &out.CreatedAt)
	if err != nil {
		return Company{}, err
	}
	if ticker.Valid {
		out.Ticker = ticker.String
	}
	return out, nil
}

// Create inserts a new note.
func (r *PGRepo) Create(ctx context.Context, note Note) error {
	const query = `
INSERT INTO research_notes (
    id,
    company_id,
    title,
    content_md,
    sections,
    created_by,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	sections, err := marshalSections(note.Sections)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		note.ID,
		nullString(note.CompanyID),
		note.Title,
		nullString(note.ContentMD),
		sections,
		nullString(note.CreatedBy),
		note.CreatedAt,
	)
	return err
}

const selectNote = `
SELECT n.id, n.company_id, c.name, c.ticker, n.title, n.content_md, n.sections, n.created_by, n.created_at, n.updated_at
FROM research_notes n
LEFT JOIN companies c ON c.id = n.company_id`

// Get fetches a note by ID.
func (r *PGRepo) Get(ctx context.Context, id string) (Note, error) {
	row := r.DB.QueryRowContext(ctx, selectNote+`
WHERE n.id = $1`, id)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Note{}, ErrNotFound
		}
		return Note{}, err
	}
	return note, nil
}

// Update writes the mutable fields of a note.
func (r *PGRepo) Update(ctx context.Context, note Note) error {
	const query = `
UPDATE research_notes
SET title = $2, content_md = $3, sections = $4, updated_at = $5
WHERE id = $1`

	sections, err := marshalSections(note.Sections)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, note.ID, note.Title, nullString(note.ContentMD), sections, note.UpdatedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns notes newest first, optionally filtered by company name.
func (r *PGRepo) List(ctx context.Context, companyQuery string) ([]Note, error) {
	query := selectNote
	args := []any{}
	if companyQuery != "" {
		query += `
WHERE c.name ILIKE $1`
		args = append(args, "%"+companyQuery+"%")
	}
	query += `
ORDER BY n.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, note)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (Note, error) {
	var note Note
	var companyID, companyName, ticker, content, createdBy sql.NullString
	var sections []byte
	var updatedAt sql.NullTime
	if err := row.Scan(
		&note.ID,
		&companyID,
		&companyName,
		&ticker,
		&note.Title,
		&content,
		&sections,
		&createdBy,
		&note.CreatedAt,
		&updatedAt,
	); err != nil {
		return Note{}, err
	}
	note.CompanyID = companyID.String
	note.CompanyName = companyName.String
	note.Ticker = ticker.String
	note.ContentMD = content.String
	note.CreatedBy = createdBy.String
	if updatedAt.Valid {
		note.UpdatedAt = &updatedAt.Time
	}
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &note.Sections); err != nil {
			return Note{}, err
		}
	}
	return note, nil
}

func marshalSections(sections map[string]any) (any, error) {
	if sections == nil {
		return nil, nil
	}
	data, err := json.Marshal(sections)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
