package render

import (
	"strings"

	"research-backend/research/model"
)

// Markdown renders the record and notes as a Markdown document.
// Empty lists still produce their heading; the notes section is always present.
func Markdown(record model.ResearchRecord, ctx model.ExportContext) string {
	var b strings.Builder

	b.WriteString("# " + model.Title(ctx.SubjectLabel) + "\n\n")
	writeMarkdownSection(&b, model.HeadingQuestions, bulletLines(record.Questions))
	writeMarkdownSection(&b, model.HeadingBusinessModel, record.BusinessModel)
	writeMarkdownSection(&b, model.HeadingRisks, bulletLines(record.Risks))
	writeMarkdownSection(&b, model.HeadingGrowthDrivers, bulletLines(record.GrowthDrivers))
	writeMarkdownSection(&b, model.HeadingNotes, ctx.Notes)
	b.WriteString("---\n")
	b.WriteString(model.GeneratedOnLine(ctx.GeneratedAt) + "\n")

	return b.String()
}

func writeMarkdownSection(b *strings.Builder, heading, body string) {
	b.WriteString("## " + heading + "\n")
	b.WriteString(body + "\n\n")
}

func bulletLines(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
