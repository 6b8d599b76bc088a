package notes

import (
	"time"

	"research-backend/research/model"
)

// Company is a researched company, unique by name.
type Company struct {
	ID        string
	Name      string
	Ticker    string
	CreatedAt time.Time
}

// Note is a saved piece of research. Sections holds the research payload in
// snake_case form; ContentMD holds the analyst's own notes.
type Note struct {
	ID          string
	CompanyID   string
	CompanyName string
	Ticker      string
	Title       string
	ContentMD   string
	Sections    map[string]any
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// SubjectLabel is the "<ticker> - <company>" label used for exports.
func (n Note) SubjectLabel() string {
	return model.SubjectLabel(n.Ticker, n.CompanyName)
}
