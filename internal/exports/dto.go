package exports

import "time"

type exportRequest struct {
	Format       string `json:"format"`
	SubjectLabel string `json:"subjectLabel"`
	Timezone     string `json:"timezone"`
}

func (r exportRequest) options() ExportOptions {
	return ExportOptions{Format: r.Format, SubjectLabel: r.SubjectLabel, Timezone: r.Timezone}
}

// ExportResponse is the outward-facing representation of a stored export.
type ExportResponse struct {
	ID         string    `json:"id"`
	NoteID     string    `json:"noteId"`
	StorageKey string    `json:"storageKey"`
	FileURL    string    `json:"fileUrl"`
	FileName   string    `json:"fileName"`
	Format     string    `json:"format"`
	SizeBytes  int64     `json:"sizeBytes"`
	PageCount  int       `json:"pageCount,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toResponse(e Export) ExportResponse {
	return ExportResponse{
		ID:         e.ID,
		NoteID:     e.NoteID,
		StorageKey: e.StorageKey,
		FileURL:    e.FileURL,
		FileName:   e.FileName,
		Format:     string(e.Format),
		SizeBytes:  e.SizeBytes,
		PageCount:  e.PageCount,
		CreatedAt:  e.CreatedAt,
	}
}
