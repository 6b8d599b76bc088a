package notes

import "context"

// NotesRepo defines persistence operations for companies and notes.
type NotesRepo interface {
	UpsertCompany(ctx context.Context, company Company) (Company, error)
	Create(ctx context.Context, note Note) error
	Get(ctx context.Context, id string) (Note, error)
	Update(ctx context.Context, note Note) error
	List(ctx context.Context, companyQuery string) ([]Note, error)
}
