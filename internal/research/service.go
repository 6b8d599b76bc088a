package research

import (
	"context"
	"fmt"
	"strings"
	"time"

	"research-backend/internal/llm"
	"research-backend/internal/shared/metrics"
	"research-backend/internal/shared/telemetry"
	"research-backend/research/assemble"
)

// Service generates research and tracks it per session.
type Service struct {
	LLM      llm.Client
	Sessions *SessionStore
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Generate produces research for the company and stores it as the session's
// current record, replacing any previous one along with its notes.
func (s *Service) Generate(ctx context.Context, sessionID string, in llm.GenerateInput) (Session, error) {
	in.Company = strings.TrimSpace(in.Company)
	in.Ticker = strings.ToUpper(strings.TrimSpace(in.Ticker))
	in.Sector = strings.TrimSpace(in.Sector)
	in.Country = strings.TrimSpace(in.Country)
	if in.Company == "" {
		return Session{}, fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}
	if sessionID == "" {
		return Session{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	raw, err := s.LLM.GenerateResearch(ctx, in)
	if err != nil {
		return Session{}, fmt.Errorf("generate research: %w", err)
	}

	sess := Session{
		Company:   in.Company,
		Ticker:    in.Ticker,
		Sector:    in.Sector,
		Country:   in.Country,
		Record:    assemble.AssembleJSON(raw),
		UpdatedAt: s.now(),
	}
	s.Sessions.Put(sessionID, sess)
	metrics.IncResearchGenerated()
	telemetry.Info("research.generated", map[string]any{
		"session_id": sessionID,
		"company":    in.Company,
		"ticker":     in.Ticker,
		"sector":     in.Sector,
		"country":    in.Country,
		"questions":  len(sess.Record.Questions),
	})
	return sess, nil
}

// Current returns the session's research.
func (s *Service) Current(ctx context.Context, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	sess, ok := s.Sessions.Get(sessionID)
	if !ok {
		return Session{}, ErrNoResearch
	}
	return sess, nil
}

// SaveNotes replaces the notes of the session's research.
func (s *Service) SaveNotes(ctx context.Context, sessionID, notes string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	sess, ok := s.Sessions.Update(sessionID, func(sess *Session) {
		sess.Notes = notes
		sess.UpdatedAt = s.now()
	})
	if !ok {
		return Session{}, ErrNoResearch
	}
	return sess, nil
}
