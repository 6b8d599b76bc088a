package notes

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of NotesRepo.
type MemoryRepo struct {
	mu        sync.RWMutex
	companies map[string]Company // name -> company
	notes     map[string]Note
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		companies: make(map[string]Company),
		notes:     make(map[string]Note),
	}
}

// UpsertCompany returns the company with the same name, creating it if needed.
// A known company gains the ticker if it had none.
func (r *MemoryRepo) UpsertCompany(ctx context.Context, company Company) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.companies[company.Name]; ok {
		if existing.Ticker == "" && company.Ticker != "" {
			existing.Ticker = company.Ticker
			r.companies[company.Name] = existing
		}
		return existing, nil
	}
	r.companies[company.Name] = company
	return company, nil
}

// Create stores a new note.
func (r *MemoryRepo) Create(ctx context.Context, note Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes[note.ID] = cloneNote(note)
	return nil
}

// Get returns a note by ID.
func (r *MemoryRepo) Get(ctx context.Context, id string) (Note, error) {
	if err := ctx.Err(); err != nil {
		return Note{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	note, ok := r.notes[id]
	if !ok {
		return Note{}, ErrNotFound
	}
	return r.withCompany(cloneNote(note)), nil
}

// Update overwrites the mutable fields of an existing note.
func (r *MemoryRepo) Update(ctx context.Context, note Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.notes[note.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Title = note.Title
	existing.ContentMD = note.ContentMD
	existing.Sections = note.Sections
	existing.UpdatedAt = note.UpdatedAt
	r.notes[note.ID] = cloneNote(existing)
	return nil
}

// List returns notes newest first, filtered by a case-insensitive company name substring.
func (r *MemoryRepo) List(ctx context.Context, companyQuery string) ([]Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := strings.ToLower(companyQuery)

	r.mu.RLock()
	out := make([]Note, 0, len(r.notes))
	for _, note := range r.notes {
		note = r.withCompany(cloneNote(note))
		if q != "" && !strings.Contains(strings.ToLower(note.CompanyName), q) {
			continue
		}
		out = append(out, note)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) withCompany(note Note) Note {
	for _, c := range r.companies {
		if c.ID == note.CompanyID {
			note.CompanyName = c.Name
			note.Ticker = c.Ticker
			break
		}
	}
	return note
}

func cloneNote(note Note) Note {
	if note.Sections != nil {
		sections := make(map[string]any, len(note.Sections))
		for k, v := range note.Sections {
			sections[k] = v
		}
		note.Sections = sections
	}
	return note
}
