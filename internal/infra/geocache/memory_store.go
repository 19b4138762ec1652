package geocache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
)

type entry struct {
	locations []location.Location
	expiresAt time.Time
}

// MemoryStore is an in-process implementation of location.Cache.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  map[string]entry
	counters metrics.CacheCounters
	now      func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements location.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) ([]location.Location, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		s.counters.Miss()
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && e.expiresAt.Before(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		s.counters.Miss()
		return nil, false, nil
	}
	s.counters.Hit()
	return cloneLocations(e.locations), true, nil
}

// Set stores locations; a non-positive ttl keeps them until restart.
func (s *MemoryStore) Set(_ context.Context, key string, locations []location.Location, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{locations: cloneLocations(locations), expiresAt: exp}
	return nil
}

// Stats reports hit and miss counts.
func (s *MemoryStore) Stats() metrics.CacheStats {
	return s.counters.Snapshot()
}

func cloneLocations(in []location.Location) []location.Location {
	out := make([]location.Location, len(in))
	copy(out, in)
	return out
}

var _ location.Cache = (*MemoryStore)(nil)
