package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"research-backend/research/assemble"
)

const defaultCreatedBy = "anonymous"

// CreateInput is the data needed to save a note.
type CreateInput struct {
	Company         string
	Ticker          string
	Title           string
	MarkdownContent string
	Sections        map[string]any
	CreatedBy       string
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title           *string
	MarkdownContent *string
	Sections        map[string]any
}

// Service contains business logic for research notes.
type Service struct {
	Repo NotesRepo
	Now  func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create upserts the company by name and stores a new note for it.
func (s *Service) Create(ctx context.Context, in CreateInput) (Note, error) {
	company := strings.TrimSpace(in.Company)
	title := strings.TrimSpace(in.Title)
	if company == "" {
		return Note{}, fmt.Errorf("%w: company is required", ErrInvalidInput)
	}
	if title == "" {
		return Note{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	now := s.now()
	c, err := s.Repo.UpsertCompany(ctx, Company{
		ID:        uuid.NewString(),
		Name:      company,
		Ticker:    strings.TrimSpace(in.Ticker),
		CreatedAt: now,
	})
	if err != nil {
		return Note{}, fmt.Errorf("upsert company: %w", err)
	}

	createdBy := strings.TrimSpace(in.CreatedBy)
	if createdBy == "" {
		createdBy = defaultCreatedBy
	}
	note := Note{
		ID:          uuid.NewString(),
		CompanyID:   c.ID,
		CompanyName: c.Name,
		Ticker:      c.Ticker,
		Title:       title,
		ContentMD:   in.MarkdownContent,
		Sections:    normalizeSections(in.Sections),
		CreatedBy:   createdBy,
		CreatedAt:   now,
	}
	if err := s.Repo.Create(ctx, note); err != nil {
		return Note{}, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// Update applies a partial update to an existing note.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Note, error) {
	note, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Note{}, fmt.Errorf("%w: title cannot be blank", ErrInvalidInput)
		}
		note.Title = title
	}
	if in.MarkdownContent != nil {
		note.ContentMD = *in.MarkdownContent
	}
	if in.Sections != nil {
		note.Sections = normalizeSections(in.Sections)
	}
	now := s.now()
	note.UpdatedAt = &now

	if err := s.Repo.Update(ctx, note); err != nil {
		return Note{}, err
	}
	return note, nil
}

// Get returns a note by ID.
func (s *Service) Get(ctx context.Context, id string) (Note, error) {
	return s.Repo.Get(ctx, id)
}

// List returns notes newest first, optionally filtered by company name.
func (s *Service) List(ctx context.Context, company string) ([]Note, error) {
	return s.Repo.List(ctx, strings.TrimSpace(company))
}

// normalizeSections stores research payloads in one canonical snake_case shape.
func normalizeSections(sections map[string]any) map[string]any {
	if sections == nil {
		return nil
	}
	return assemble.ToSections(assemble.Assemble(sections))
}
