package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Report is the health payload.
type Report struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB        Pinger
	CacheKind string
	Timeout   time.Duration
}

// NewService constructs a new health service. db may be nil when repositories are in memory.
func NewService(db Pinger, cacheKind string) *Service {
	return &Service{DB: db, CacheKind: cacheKind, Timeout: 2 * time.Second}
}

// Status reports whether the database answers a ping.
func (s *Service) Status(ctx context.Context) Report {
	r := Report{OK: true, Database: "memory", Cache: s.CacheKind}
	if r.Cache == "" {
		r.Cache = "memory"
	}
	if s.DB == nil {
		return r
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		r.OK = false
		r.Database = "down"
		return r
	}
	r.Database = "up"
	return r
}
