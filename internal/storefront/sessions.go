package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/storefront/internal/logx"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const DefaultSessionTTL = 2 * time.Hour

// Sessions holds the App of every live visitor, keyed by session id.
type Sessions struct {
	deps Deps
	ttl  time.Duration
	now  func() time.Time
	log  zerolog.Logger

	mu   sync.Mutex
	apps map[string]*entry
}

type entry struct {
	app      *App
	lastSeen time.Time
}

func NewSessions(deps Deps, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		deps: deps,
		ttl:  ttl,
		now:  time.Now,
		log:  logx.Component("sessions"),
		apps: make(map[string]*entry),
	}
}

// Lookup returns the live App for id and marks it as seen.
func (s *Sessions) Lookup(id string) (*App, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.apps[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		s.dropLocked(id)
		return nil, false
	}
	e.lastSeen = now
	return e.app, true
}

// Open starts a new visitor session on the home page and loads its catalog.
func (s *Sessions) Open(ctx context.Context) (*App, error) {
	api, err := s.deps.NewAPI()
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	app := NewApp(uuid.New().String(), s.deps.Loop, api, s.deps.Admins, s.deps.Journal)
	s.mu.Lock()
	s.apps[app.ID()] = &entry{app: app, lastSeen: s.now()}
	s.mu.Unlock()
	s.log.Debug().Str("session", app.ID()).Msg("session opened")

	if err := app.LoadCatalog(ctx); err != nil {
		return app, err
	}
	return app, nil
}

// Sweep evicts sessions idle for longer than the TTL.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for id, e := range s.apps {
		if now.Sub(e.lastSeen) > s.ttl {
			s.dropLocked(id)
			evicted++
		}
	}
	if evicted > 0 {
		s.log.Info().Int("evicted", evicted).Int("live", len(s.apps)).Msg("idle sessions evicted")
	}
	return evicted
}

// Run sweeps periodically until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.apps)
}

func (s *Sessions) dropLocked(id string) {
	delete(s.apps, id)
	if s.deps.Journal != nil {
		s.deps.Journal.Forget(id)
	}
}
