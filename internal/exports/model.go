package exports

import (
	"time"

	"research-backend/research/render"
)

// Export records an artifact rendered from a saved note and kept in object storage.
type Export struct {
	ID         string
	NoteID     string
	StorageKey string
	FileURL    string
	FileName   string
	Format     render.Format
	SizeBytes  int64
	PageCount  int
	CreatedAt  time.Time
}

// ContentType is the MIME type the export is served with.
func (e Export) ContentType() string {
	return e.Format.ContentType()
}

func downloadURL(id string) string {
	return "/api/v1/exports/" + id + "/download"
}
