package metrics

import "sync/atomic"

// CacheCounters tracks lookup outcomes for a cache. Safe for concurrent use.
type CacheCounters struct {
	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats is a point-in-time copy of CacheCounters.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// Hit records a cache hit.
func (c *CacheCounters) Hit() { c.hits.Add(1) }

// Miss records a cache miss.
func (c *CacheCounters) Miss() { c.misses.Add(1) }

// Snapshot returns the current counts.
func (c *CacheCounters) Snapshot() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// IsZero reports whether no lookups were recorded.
func (s CacheStats) IsZero() bool {
	return s.Hits == 0 && s.Misses == 0
}
