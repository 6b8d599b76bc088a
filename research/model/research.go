package model

import (
	"strings"
	"time"
)

// ResearchRecord is the canonical research payload shared by every export format.
type ResearchRecord struct {
	Questions     []string `json:"questions"`
	BusinessModel string   `json:"businessModel"`
	Risks         []string `json:"risks"`
	GrowthDrivers []string `json:"growthDrivers"`
}

// ExportContext carries the per-export inputs that are not part of the record.
type ExportContext struct {
	SubjectLabel string
	Notes        string
	GeneratedAt  time.Time
}

const subjectSeparator = " - "

// IsEmpty reports whether the record carries no content at all.
func (r ResearchRecord) IsEmpty() bool {
	return len(r.Questions) == 0 && r.BusinessModel == "" && len(r.Risks) == 0 && len(r.GrowthDrivers) == 0
}

// SubjectPrefix returns the label text before the first " - ", or the whole label.
func SubjectPrefix(label string) string {
	if idx := strings.Index(label, subjectSeparator); idx >= 0 {
		return label[:idx]
	}
	return label
}

// SubjectLabel joins a ticker and a company name the way the company picker does.
func SubjectLabel(ticker, name string) string {
	ticker = strings.TrimSpace(ticker)
	name = strings.TrimSpace(name)
	switch {
	case ticker == "":
		return name
	case name == "":
		return ticker
	default:
		return ticker + subjectSeparator + name
	}
}

// FileName builds "<prefix>_research.<ext>".
func FileName(label, ext string) string {
	return SubjectPrefix(label) + "_research." + strings.TrimPrefix(ext, ".")
}

// FormatGeneratedOn renders the export date in the short US form (M/D/YYYY).
func FormatGeneratedOn(t time.Time) string {
	return t.Format("1/2/2006")
}

// GeneratedOnLine is the trailing line shared by all formats.
func GeneratedOnLine(t time.Time) string {
	return "Generated on " + FormatGeneratedOn(t)
}

// Title is the document heading for the given subject.
func Title(label string) string {
	return "Equity Research: " + label
}

// Section headings in document order.
const (
	HeadingQuestions     = "Research Questions"
	HeadingBusinessModel = "Business Model"
	HeadingRisks         = "Key Risks"
	HeadingGrowthDrivers = "Growth Drivers"
	HeadingNotes         = "Analyst Notes"
)
