package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"research-backend/internal/shared/storage/object"
	"research-backend/research/render"
)

const (
	mimeMarkdown = "text/markdown"
	mimePDF      = "application/pdf"
	mimeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var ErrInvalidArtifact = errors.New("invalid artifact")

// Verify re-reads a packed artifact with an independent parser so broken
// output never reaches storage or the client.
// Libraries used: github.com/ledongthuc/pdf (PDF) and github.com/nguyenthenguyen/docx (DOCX).
func Verify(ctx context.Context, a render.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(a.Data) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidArtifact, a.FileName)
	}
	switch a.Format {
	case render.FormatMarkdown:
		if !utf8.Valid(a.Data) {
			return fmt.Errorf("%w: %s is not valid utf-8", ErrInvalidArtifact, a.FileName)
		}
		return nil
	case render.FormatPDF:
		pages, err := pdfPageCount(a.Data)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, a.FileName, err)
		}
		if a.PageCount > 0 && pages != a.PageCount {
			return fmt.Errorf("%w: %s has %d pages, layout produced %d", ErrInvalidArtifact, a.FileName, pages, a.PageCount)
		}
		return nil
	case render.FormatDOCX:
		content, err := docxContent(a.Data)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, a.FileName, err)
		}
		if !strings.Contains(content, "<w:body>") {
			return fmt.Errorf("%w: %s has no document body", ErrInvalidArtifact, a.FileName)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidArtifact, a.Format)
	}
}

// ExtractText pulls plain text from a stored export.
func ExtractText(ctx context.Context, store object.ObjectStore, fileKey string, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: %w", fileKey, mimeType, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: read: %w", fileKey, mimeType, err)
	}

	text, err := ExtractTextFromBytes(ctx, raw, mimeType, fileName)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: %w", fileKey, mimeType, err)
	}
	return text, nil
}

// ExtractTextFromBytes extracts text from an in-memory payload.
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch normalizeMimeType(mimeType, fileName) {
	case mimeMarkdown:
		return string(data), nil
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX:
		content, err := docxContent(data)
		if err != nil {
			return "", err
		}
		return render.DocumentText(content)
	default:
		return "", fmt.Errorf("unsupported mime type: %s", mimeType)
	}
}

func pdfPageCount(data []byte) (int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func docxContent(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()
	return doc.Editable().GetContent(), nil
}

func normalizeMimeType(mimeType string, fileName string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean != "" && clean != "application/octet-stream" {
		return clean
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".md":
		return mimeMarkdown
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	default:
		return clean
	}
}
