package render

import (
	"bytes"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"research-backend/research/model"
)

const pdfProducer = "research-backend"

// ErrUnsupportedCharacter reports text the PDF core fonts cannot encode.
// Markdown and DOCX exports carry any Unicode text.
var ErrUnsupportedCharacter = errors.New("character not supported in pdf export")

// pdfWriter owns one fpdf document. It doubles as the TextMeasurer so layout
// and output agree on glyph widths.
type pdfWriter struct {
	doc       *fpdf.Fpdf
	translate func(string) string
	spec      PageSpec
}

func newPDFWriter(spec PageSpec, generatedAt time.Time) *pdfWriter {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: spec.Width, Ht: spec.Height},
	})
	doc.SetMargins(spec.Margin, spec.Margin, spec.Margin)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(generatedAt)
	doc.SetModificationDate(generatedAt)
	doc.SetProducer(pdfProducer, false)
	doc.SetCreator(pdfProducer, false)

	return &pdfWriter{
		doc:       doc,
		translate: doc.UnicodeTranslatorFromDescriptor(""),
		spec:      spec,
	}
}

func (w *pdfWriter) TextWidth(text string, style TextStyle) float64 {
	w.doc.SetFont(FontFamily, style.fpdfStyle(), style.Size)
	return w.doc.GetStringWidth(w.translate(text))
}

// unsupportedRune returns the first rune of text outside the cp1252 code page.
// The translator substitutes '.' for those, which no cp1252 byte >= 0x80 maps to.
func (w *pdfWriter) unsupportedRune(text string) (rune, bool) {
	for _, r := range text {
		if r < utf8.RuneSelf {
			continue
		}
		if w.translate(string(r)) == "." {
			return r, true
		}
	}
	return 0, false
}

func (w *pdfWriter) checkEncodable(title string, pages []Page) error {
	texts := []string{title}
	for _, page := range pages {
		for _, op := range page.Ops {
			texts = append(texts, op.Text)
		}
	}
	for _, text := range texts {
		if r, ok := w.unsupportedRune(text); ok {
			return fmt.Errorf("%w: %q (U+%04X)", ErrUnsupportedCharacter, r, r)
		}
	}
	return nil
}

func (w *pdfWriter) write(title string, pages []Page) ([]byte, error) {
	if err := w.checkEncodable(title, pages); err != nil {
		return nil, err
	}
	w.doc.SetTitle(title, true)
	for _, page := range pages {
		w.doc.AddPage()
		for _, op := range page.Ops {
			if op.Text == "" {
				continue
			}
			w.doc.SetFont(FontFamily, op.Style.fpdfStyle(), op.Style.Size)
			w.doc.Text(op.X, op.Y, w.translate(op.Text))
		}
	}
	if w.doc.Err() {
		return nil, fmt.Errorf("pdf layout: %w", w.doc.Error())
	}

	var buf bytes.Buffer
	if err := w.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF lays out the record and serializes it. The result is byte-stable for
// identical inputs. Text outside cp1252 fails with ErrUnsupportedCharacter.
func PDF(record model.ResearchRecord, ctx model.ExportContext, spec PageSpec) ([]byte, int, error) {
	spec = spec.normalized()
	w := newPDFWriter(spec, ctx.GeneratedAt)
	pages := Layout(record, ctx, spec, w)
	out, err := w.write(model.Title(ctx.SubjectLabel), pages)
	if err != nil {
		return nil, 0, err
	}
	return out, len(pages), nil
}

// HelveticaMeasurer returns a measurer backed by the core Helvetica metrics.
func HelveticaMeasurer() TextMeasurer {
	return newPDFWriter(DefaultPageSpec(), time.Time{})
}
