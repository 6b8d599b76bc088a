package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		label string
		ext   string
		want  string
	}{
		{"AAPL - Apple Inc.", "pdf", "AAPL_research.pdf"},
		{"Apple", "md", "Apple_research.md"},
		{"A - B - C", ".docx", "A_research.docx"},
		{"", "md", "_research.md"},
		{"BRK-B", "pdf", "BRK-B_research.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.label, tt.ext), tt.label)
	}
}

func TestSubjectLabel(t *testing.T) {
	assert.Equal(t, "AAPL - Apple Inc.", SubjectLabel("AAPL", "Apple Inc."))
	assert.Equal(t, "Apple Inc.", SubjectLabel(" ", "Apple Inc."))
	assert.Equal(t, "AAPL", SubjectLabel("AAPL", ""))
}

func TestFormatGeneratedOn(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "3/5/2024", FormatGeneratedOn(ts))
	assert.Equal(t, "Generated on 3/5/2024", GeneratedOnLine(ts))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, ResearchRecord{}.IsEmpty())
	assert.False(t, ResearchRecord{BusinessModel: "x"}.IsEmpty())
}
