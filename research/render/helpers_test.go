package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/require"

	"research-backend/research/model"
)

// fixedMeasurer treats every rune as half the font size wide.
type fixedMeasurer struct{}

func (fixedMeasurer) TextWidth(text string, style TextStyle) float64 {
	return float64(utf8.RuneCountInString(text)) * style.Size * 0.5
}

var sampleTime = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

func sampleRecord() model.ResearchRecord {
	return model.ResearchRecord{
		Questions:     []string{"What is the moat?", "How durable is growth?"},
		BusinessModel: "Sells devices and services to consumers worldwide.",
		Risks:         []string{"Competition", "Regulation"},
		GrowthDrivers: []string{"Services", "Emerging markets"},
	}
}

func sampleContext() model.ExportContext {
	return model.ExportContext{
		SubjectLabel: "AAPL - Apple Inc.",
		Notes:        "Watch gross margin.",
		GeneratedAt:  sampleTime,
	}
}

func manyItems(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", prefix, i+1)
	}
	return out
}

func flattenOps(pages []Page) []DrawOp {
	var out []DrawOp
	for _, p := range pages {
		out = append(out, p.Ops...)
	}
	return out
}

func opTexts(pages []Page) []string {
	var out []string
	for _, op := range flattenOps(pages) {
		out = append(out, op.Text)
	}
	return out
}

// pdfPlainText reads the drawn text back out of PDF bytes, one line per text
// object, with runs of whitespace collapsed.
func pdfPlainText(t *testing.T, data []byte) string {
	t.Helper()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	plain, err := reader.GetPlainText()
	require.NoError(t, err)
	raw, err := io.ReadAll(plain)
	require.NoError(t, err)

	var lines []string
	for _, line := range strings.Split(string(raw), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
