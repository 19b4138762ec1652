package geocache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
)

// ValkeyStore persists geocoding results in a Valkey-compatible database.
type ValkeyStore struct {
	client   valkey.Client
	prefix   string
	counters metrics.CacheCounters
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "geocode"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) ([]location.Location, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.entryKey(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			s.counters.Miss()
			return nil, false, nil
		}
		return nil, false, err
	}
	var locations []location.Location
	if err := json.Unmarshal([]byte(payload), &locations); err != nil {
		return nil, false, err
	}
	s.counters.Hit()
	return locations, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key string, locations []location.Location, ttl time.Duration) error {
	payload, err := json.Marshal(locations)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

// Stats reports hit and miss counts observed by this process.
func (s *ValkeyStore) Stats() metrics.CacheStats {
	return s.counters.Snapshot()
}

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

var _ location.Cache = (*ValkeyStore)(nil)
