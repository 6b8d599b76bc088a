package research

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"research-backend/research/model"
)

// Session is the per-visitor research state: the latest record plus notes.
type Session struct {
	Company   string
	Ticker    string
	Sector    string
	Country   string
	Record    model.ResearchRecord
	Notes     string
	UpdatedAt time.Time
}

// SubjectLabel is the export subject for the session's research.
func (s Session) SubjectLabel() string {
	return model.SubjectLabel(s.Ticker, s.Company)
}

// SessionStore keeps sessions in memory. Entries expire after the TTL
// since their last write.
type SessionStore struct {
	mu    sync.Mutex
	cache *cache.Cache
	ttl   time.Duration
}

// NewSessionStore constructs a store with the given TTL. A non-positive TTL
// keeps sessions until the process exits.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	cleanup := ttl
	if cleanup == cache.NoExpiration || cleanup > 10*time.Minute {
		cleanup = 10 * time.Minute
	}
	return &SessionStore{
		cache: cache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

// Get returns a copy of the session.
func (s *SessionStore) Get(id string) (Session, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return Session{}, false
	}
	return v.(Session), true
}

// Put replaces the session.
func (s *SessionStore) Put(id string, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(id, sess, s.ttl)
}

// Update applies fn to an existing session under the store lock.
func (s *SessionStore) Update(id string, fn func(*Session)) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.Get(id)
	if !ok {
		return Session{}, false
	}
	fn(&sess)
	s.cache.Set(id, sess, s.ttl)
	return sess, true
}

// Len reports live sessions.
func (s *SessionStore) Len() int {
	return s.cache.ItemCount()
}
