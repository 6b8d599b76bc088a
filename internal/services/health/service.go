package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	DB          *sql.DB
	ObjectStore string
}

// Status is the health payload.
type Status struct {
	OK          bool   `json:"ok"`
	Database    string `json:"database"`
	ObjectStore string `json:"objectStore"`
}

// NewService constructs a new health service. A nil db means in-memory repositories.
func NewService(db *sql.DB, objectStore string) *Service {
	return &Service{DB: db, ObjectStore: objectStore}
}

// Status pings the database when one is configured.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, Database: "memory", ObjectStore: s.ObjectStore}
	if s.DB == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		st.OK = false
		st.Database = "down"
		return st
	}
	st.Database = "up"
	return st
}
