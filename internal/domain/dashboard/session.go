package dashboard

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/internal/domain/weather"
	"github.com/yanqian/weather-dashboard/pkg/util"
)

// Session owns the UI state of one visitor.
//
// Two sequence counters guard against out-of-order completions: every
// keystroke bumps suggestSeq and every search or selection bumps renderSeq.
// A response only touches the state when its counter is still the latest.
type Session struct {
	id        string
	cfg       Config
	resolver  location.Service
	renderer  forecast.Service
	catalog   *weather.Catalog
	clock     util.Clock
	debouncer *util.Debouncer
	logger    *slog.Logger

	mu         sync.Mutex
	state      State
	suggestSeq uint64
	renderSeq  uint64
	lastSeen   time.Time
}

func newSession(id string, cfg Config, resolver location.Service, renderer forecast.Service, clock util.Clock, logger *slog.Logger) *Session {
	return &Session{
		id:        id,
		cfg:       cfg,
		resolver:  resolver,
		renderer:  renderer,
		catalog:   weather.NewCatalog(cfg.Language),
		clock:     clock,
		debouncer: util.NewDebouncer(clock, cfg.Debounce),
		logger:    logger.With("component", "dashboard.session", "session_id", id),
		lastSeen:  clock.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	return s.snapshotLocked()
}

// Input records a keystroke. Suggestions from earlier keystrokes are
// discarded. Short queries stop there; longer ones schedule a lookup once
// typing pauses and mark the suggestions pending until it lands.
func (s *Session) Input(query string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	s.state.Query = query
	s.suggestSeq++
	seq := s.suggestSeq
	s.state.Suggestions = nil
	s.state.SuggestionsVisible = false
	s.state.SuggestionsQuery = ""
	s.state.SuggestionsPending = false

	if utf8.RuneCountInString(strings.TrimSpace(query)) < s.cfg.MinQueryLength {
		s.debouncer.Cancel()
		return s.snapshotLocked()
	}
	s.state.SuggestionsPending = true
	s.debouncer.Schedule(func() { s.suggest(seq, query) })
	return s.snapshotLocked()
}

func (s *Session) suggest(seq uint64, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SuggestTimeout)
	defer cancel()
	results, err := s.resolver.Suggest(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.suggestSeq {
		s.logger.Debug("dropping stale suggestions", "query", query)
		return
	}
	s.state.SuggestionsPending = false
	s.state.SuggestionsQuery = query
	if err != nil {
		s.logger.Warn("suggestion lookup failed", "query", query, "error", err)
		return
	}
	if len(results) == 0 {
		s.state.Suggestions = nil
		s.state.SuggestionsVisible = false
		return
	}
	s.state.Suggestions = results
	s.state.SuggestionsVisible = true
}

// Dismiss hides the suggestion box, as when the user clicks elsewhere.
func (s *Session) Dismiss() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	s.state.SuggestionsVisible = false
	return s.snapshotLocked()
}

// AcknowledgeNotification clears the pending notification.
func (s *Session) AcknowledgeNotification() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	s.state.Notification = ""
	return s.snapshotLocked()
}

// Search runs an explicit user search. Failures surface as a notification.
// An empty query is ignored.
func (s *Session) Search(ctx context.Context, query string) State {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return s.State()
	}
	s.mu.Lock()
	s.state.Query = query
	s.mu.Unlock()
	return s.search(ctx, trimmed, true)
}

// AutoLoad searches the default query for first paint. Failures are logged
// but never surface as a notification.
func (s *Session) AutoLoad(ctx context.Context) State {
	return s.search(ctx, s.cfg.DefaultQuery, false)
}

// Select renders a location picked from the suggestion list.
func (s *Session) Select(ctx context.Context, loc location.Location) State {
	s.mu.Lock()
	s.touchLocked()
	s.state.Query = loc.Name
	s.closeSuggestionsLocked()
	s.renderSeq++
	seq := s.renderSeq
	s.state.Notification = ""
	s.state.Loading = true
	s.state.StatusText = s.catalog.Message(weather.MsgFetching)
	s.mu.Unlock()

	return s.render(ctx, seq, loc, true)
}

func (s *Session) search(ctx context.Context, query string, explicit bool) State {
	s.mu.Lock()
	s.touchLocked()
	s.closeSuggestionsLocked()
	s.renderSeq++
	seq := s.renderSeq
	s.state.Notification = ""
	s.state.Loading = true
	s.state.StatusText = s.catalog.Message(weather.MsgSearching)
	s.mu.Unlock()

	loc, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if seq != s.renderSeq {
			return s.snapshotLocked()
		}
		s.clearLoadingLocked()
		if explicit {
			s.state.Notification = s.catalog.Message(weather.MsgNotFound)
			s.logger.Warn("location search failed", "query", query, "error", err)
		} else {
			s.logger.Info("automatic location search failed", "query", query, "error", err)
		}
		return s.snapshotLocked()
	}

	s.mu.Lock()
	stale := seq != s.renderSeq
	if !stale {
		s.state.StatusText = s.catalog.Message(weather.MsgFetching)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if stale {
		return snap
	}

	return s.render(ctx, seq, loc, explicit)
}

func (s *Session) render(ctx context.Context, seq uint64, loc location.Location, explicit bool) State {
	dash, err := s.renderer.Render(ctx, loc)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.renderSeq {
		s.logger.Debug("dropping stale forecast", "location", loc.Name)
		return s.snapshotLocked()
	}
	s.clearLoadingLocked()
	if err != nil {
		if explicit {
			s.state.Notification = s.catalog.Message(weather.MsgLoadFailed)
			s.logger.Warn("forecast render failed", "location", loc.Name, "error", err)
		} else {
			s.logger.Info("automatic forecast render failed", "location", loc.Name, "error", err)
		}
		return s.snapshotLocked()
	}
	s.state.Dashboard = &dash
	s.state.DashboardVisible = true
	return s.snapshotLocked()
}

// Close cancels any pending suggestion lookup.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestSeq++
	s.debouncer.Cancel()
}

func (s *Session) closeSuggestionsLocked() {
	s.suggestSeq++
	s.debouncer.Cancel()
	s.state.SuggestionsVisible = false
	s.state.SuggestionsPending = false
}

func (s *Session) clearLoadingLocked() {
	s.state.Loading = false
	s.state.StatusText = ""
}

func (s *Session) touchLocked() {
	s.lastSeen = s.clock.Now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) snapshotLocked() State {
	out := s.state
	if s.state.Suggestions != nil {
		out.Suggestions = make([]location.Location, len(s.state.Suggestions))
		copy(out.Suggestions, s.state.Suggestions)
	}
	return out
}
