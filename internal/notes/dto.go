package notes

import "time"

type createRequest struct {
	Company         string         `json:"company"`
	Ticker          string         `json:"ticker"`
	Title           string         `json:"title"`
	MarkdownContent string         `json:"markdownContent"`
	Sections        map[string]any `json:"sections"`
	CreatedBy       string         `json:"createdBy"`
}

type updateRequest struct {
	Title           *string        `json:"title"`
	MarkdownContent *string        `json:"markdownContent"`
	Sections        map[string]any `json:"sections"`
}

// NoteResponse is the outward-facing representation of a note.
type NoteResponse struct {
	ID              string         `json:"id"`
	CompanyID       string         `json:"companyId"`
	Company         string         `json:"company"`
	Ticker          string         `json:"ticker,omitempty"`
	Title           string         `json:"title"`
	MarkdownContent string         `json:"markdownContent"`
	Sections        map[string]any `json:"sections"`
	CreatedBy       string         `json:"createdBy"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       *time.Time     `json:"updatedAt,omitempty"`
}

func toResponse(n Note) NoteResponse {
	return NoteResponse{
		ID:              n.ID,
		CompanyID:       n.CompanyID,
		Company:         n.CompanyName,
		Ticker:          n.Ticker,
		Title:           n.Title,
		MarkdownContent: n.ContentMD,
		Sections:        n.Sections,
		CreatedBy:       n.CreatedBy,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}
