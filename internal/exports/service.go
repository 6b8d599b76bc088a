package exports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	_ "time/tzdata" // client-supplied zone names resolve without system zoneinfo

	"github.com/google/uuid"

	"research-backend/internal/extract"
	"research-backend/internal/notes"
	"research-backend/internal/research"
	"research-backend/internal/shared/metrics"
	"research-backend/internal/shared/storage/object"
	"research-backend/internal/shared/telemetry"
	"research-backend/research/assemble"
	"research-backend/research/model"
	"research-backend/research/render"
)

const unknownSubject = "Unknown"

// NoteSource loads saved notes.
type NoteSource interface {
	Get(ctx context.Context, id string) (notes.Note, error)
}

// SessionSource loads a session's current research.
type SessionSource interface {
	Current(ctx context.Context, sessionID string) (research.Session, error)
}

// Service renders research into export artifacts.
type Service struct {
	Store    object.ObjectStore
	Repo     ExportsRepo
	Notes    NoteSource
	Research SessionSource
	Now      func() time.Time
	// Location is the default zone for export dates. Nil means UTC.
	Location *time.Location
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Render produces and verifies one artifact. Failures wrap both ErrExportFailed
// and the cause. When ctx is done the ctx error is returned instead and the
// failure is not counted.
func (s *Service) Render(ctx context.Context, format render.Format, record model.ResearchRecord, ectx model.ExportContext) (render.Artifact, error) {
	start := time.Now()
	artifact, err := s.render(ctx, format, record, ectx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			telemetry.Info("export.canceled", map[string]any{
				"export_format": string(format),
				"subject":       ectx.SubjectLabel,
			})
			return render.Artifact{}, fmt.Errorf("render %s: %w", format, ctxErr)
		}
		metrics.IncExportFailed(string(format))
		telemetry.Error("export.failed", map[string]any{
			"export_format": string(format),
			"subject":       ectx.SubjectLabel,
			"error":         err.Error(),
		})
		return render.Artifact{}, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	elapsed := time.Since(start)
	metrics.IncExportCompleted(string(format))
	metrics.ObserveExportDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("export.completed", map[string]any{
		"export_format": string(format),
		"file_name":     artifact.FileName,
		"size_bytes":    len(artifact.Data),
		"page_count":    artifact.PageCount,
		"duration_ms":   elapsed.Milliseconds(),
	})
	return artifact, nil
}

func (s *Service) render(ctx context.Context, format render.Format, record model.ResearchRecord, ectx model.ExportContext) (render.Artifact, error) {
	renderer, err := render.For(format)
	if err != nil {
		return render.Artifact{}, err
	}
	artifact, err := renderer.Render(record, ectx)
	if err != nil {
		return render.Artifact{}, err
	}
	if err := extract.Verify(ctx, artifact); err != nil {
		return render.Artifact{}, err
	}
	return artifact, nil
}

// ExportOptions carries the caller's choices for one export.
type ExportOptions struct {
	Format string
	// SubjectLabel overrides the title subject; empty uses the research's own.
	SubjectLabel string
	// Timezone is an IANA zone name for the "Generated on" date; empty uses
	// the service's Location.
	Timezone string
}

// location resolves the zone the export date is printed in.
func (s *Service) location(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		if s.Location != nil {
			return s.Location, nil
		}
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// ExportCurrent renders the session's research together with its notes.
// An empty SubjectLabel falls back to the subject the research was generated for.
func (s *Service) ExportCurrent(ctx context.Context, sessionID string, opts ExportOptions) (render.Artifact, error) {
	format, err := parseFormat(opts.Format)
	if err != nil {
		return render.Artifact{}, err
	}
	loc, err := s.location(opts.Timezone)
	if err != nil {
		return render.Artifact{}, err
	}
	sess, err := s.Research.Current(ctx, sessionID)
	if err != nil {
		return render.Artifact{}, err
	}

	label := strings.TrimSpace(opts.SubjectLabel)
	if label == "" {
		label = sess.SubjectLabel()
	}
	return s.Render(ctx, format, sess.Record, model.ExportContext{
		SubjectLabel: label,
		Notes:        sess.Notes,
		GeneratedAt:  s.now().In(loc),
	})
}

// ExportNote renders a saved note, stores the artifact and records it.
func (s *Service) ExportNote(ctx context.Context, noteID string, opts ExportOptions) (Export, error) {
	format, err := parseFormat(opts.Format)
	if err != nil {
		return Export{}, err
	}
	loc, err := s.location(opts.Timezone)
	if err != nil {
		return Export{}, err
	}
	note, err := s.Notes.Get(ctx, noteID)
	if err != nil {
		return Export{}, err
	}

	label := strings.TrimSpace(opts.SubjectLabel)
	if label == "" {
		label = note.SubjectLabel()
	}
	if label == "" {
		label = unknownSubject
	}
	now := s.now()
	artifact, err := s.Render(ctx, format, assemble.Assemble(note.Sections), model.ExportContext{
		SubjectLabel: label,
		Notes:        note.ContentMD,
		GeneratedAt:  now.In(loc),
	})
	if err != nil {
		return Export{}, err
	}

	storageKey, size, err := s.Store.Save(ctx, "note:"+note.ID, artifact.FileName, artifact.ContentType, bytes.NewReader(artifact.Data))
	if err != nil {
		return Export{}, fmt.Errorf("%w: store artifact: %w", ErrExportFailed, err)
	}

	id := uuid.NewString()
	export := Export{
		ID:         id,
		NoteID:     note.ID,
		StorageKey: storageKey,
		FileURL:    downloadURL(id),
		FileName:   artifact.FileName,
		Format:     format,
		SizeBytes:  size,
		PageCount:  artifact.PageCount,
		CreatedAt:  now,
	}
	if err := s.Repo.Create(ctx, export); err != nil {
		if delErr := s.Store.Delete(ctx, storageKey); delErr != nil {
			telemetry.Warn("export.cleanup_failed", map[string]any{
				"storage_key": storageKey,
				"error":       delErr.Error(),
			})
		}
		return Export{}, fmt.Errorf("%w: record export: %w", ErrExportFailed, err)
	}
	return export, nil
}

// ListByNote returns the stored exports of a note.
func (s *Service) ListByNote(ctx context.Context, noteID string) ([]Export, error) {
	if _, err := s.Notes.Get(ctx, noteID); err != nil {
		return nil, err
	}
	return s.Repo.ListByNote(ctx, noteID)
}

// Open returns a stored export and a reader over its bytes. Callers close the reader.
func (s *Service) Open(ctx context.Context, id string) (Export, io.ReadCloser, error) {
	export, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Export{}, nil, err
	}
	rc, err := s.Store.Open(ctx, export.StorageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Export{}, nil, ErrNotFound
		}
		return Export{}, nil, err
	}
	return export, rc, nil
}

// Text extracts the plain text of a stored export.
func (s *Service) Text(ctx context.Context, id string) (string, error) {
	export, err := s.Repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	text, err := extract.ExtractText(ctx, s.Store, export.StorageKey, export.ContentType(), export.FileName)
	if errors.Is(err, object.ErrNotFound) {
		return "", ErrNotFound
	}
	return text, err
}

func parseFormat(raw string) (render.Format, error) {
	format, err := render.ParseFormat(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return format, nil
}
