package render

import (
	"errors"
	"fmt"
	"strings"

	"research-backend/research/model"
)

// Format names an export encoding.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// Formats lists every supported format in a stable order.
var Formats = []Format{FormatMarkdown, FormatPDF, FormatDOCX}

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat accepts "md"/"markdown", "pdf" and "docx", case-insensitively.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// Artifact is a rendered export ready to be written or served.
type Artifact struct {
	Format      Format
	FileName    string
	ContentType string
	Data        []byte
	// PageCount is set for paginated formats only.
	PageCount int
}

// Renderer turns a record plus export context into one encoding.
type Renderer interface {
	Format() Format
	Render(record model.ResearchRecord, ctx model.ExportContext) (Artifact, error)
}

// For returns the renderer for a format.
func For(f Format) (Renderer, error) {
	switch f {
	case FormatMarkdown:
		return MarkdownRenderer{}, nil
	case FormatPDF:
		return PDFRenderer{Spec: DefaultPageSpec()}, nil
	case FormatDOCX:
		return DOCXRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

func newArtifact(f Format, ctx model.ExportContext, data []byte) Artifact {
	return Artifact{
		Format:      f,
		FileName:    model.FileName(ctx.SubjectLabel, string(f)),
		ContentType: f.ContentType(),
		Data:        data,
	}
}

type MarkdownRenderer struct{}

func (MarkdownRenderer) Format() Format { return FormatMarkdown }

func (MarkdownRenderer) Render(record model.ResearchRecord, ctx model.ExportContext) (Artifact, error) {
	return newArtifact(FormatMarkdown, ctx, []byte(Markdown(record, ctx))), nil
}

type PDFRenderer struct {
	Spec PageSpec
}

func (PDFRenderer) Format() Format { return FormatPDF }

func (r PDFRenderer) Render(record model.ResearchRecord, ctx model.ExportContext) (Artifact, error) {
	data, pages, err := PDF(record, ctx, r.Spec)
	if err != nil {
		return Artifact{}, err
	}
	a := newArtifact(FormatPDF, ctx, data)
	a.PageCount = pages
	return a, nil
}

type DOCXRenderer struct{}

func (DOCXRenderer) Format() Format { return FormatDOCX }

func (DOCXRenderer) Render(record model.ResearchRecord, ctx model.ExportContext) (Artifact, error) {
	data, err := DOCX(record, ctx)
	if err != nil {
		return Artifact{}, err
	}
	return newArtifact(FormatDOCX, ctx, data), nil
}
