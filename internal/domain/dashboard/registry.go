package dashboard

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/pkg/util"
)

// Registry keeps one Session per visitor and evicts idle ones.
type Registry struct {
	cfg      Config
	resolver location.Service
	renderer forecast.Service
	clock    util.Clock
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry wires up the session registry.
func NewRegistry(cfg Config, resolver location.Service, renderer forecast.Service, clock util.Clock, logger *slog.Logger) *Registry {
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = 3
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	if cfg.SuggestTimeout <= 0 {
		cfg.SuggestTimeout = 10 * time.Second
	}
	return &Registry{
		cfg:      cfg,
		resolver: resolver,
		renderer: renderer,
		clock:    clock,
		logger:   logger.With("component", "dashboard.registry"),
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id, or false when unknown or evicted.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	s, ok := r.sessions[id]
	return s, ok
}

// GetOrCreate returns the session for id, creating a fresh one when id is
// unknown. The boolean reports whether a session was created.
func (r *Registry) GetOrCreate(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	if s, ok := r.sessions[id]; ok && id != "" {
		return s, false
	}
	newID := uuid.NewString()
	s := newSession(newID, r.cfg, r.resolver, r.renderer, r.clock, r.logger)
	r.sessions[newID] = s
	r.logger.Debug("session created", "session_id", newID)
	return s, true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts idle sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *Registry) sweepLocked() int {
	cutoff := r.clock.Now().Add(-r.cfg.IdleTTL)
	removed := 0
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			s.Close()
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Debug("idle sessions evicted", "count", removed)
	}
	return removed
}
