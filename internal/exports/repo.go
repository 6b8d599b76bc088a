package exports

import "context"

// ExportsRepo defines persistence operations for stored exports.
type ExportsRepo interface {
	Create(ctx context.Context, export Export) error
	Get(ctx context.Context, id string) (Export, error)
	ListByNote(ctx context.Context, noteID string) ([]Export, error)
}
