package geocache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	locs := []location.Location{{Name: "Bandung", Admin1: "Jawa Barat", Country: "Indonesia", Latitude: -6.9, Longitude: 107.6}}

	_, ok, err := store.Get(ctx, "id:5:bandung")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "id:5:bandung", locs, time.Minute))
	got, ok, err := store.Get(ctx, "id:5:bandung")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, locs, got)

	got[0].Name = "mutated"
	again, _, _ := store.Get(ctx, "id:5:bandung")
	require.Equal(t, "Bandung", again[0].Name)

	require.Equal(t, metrics.CacheStats{Hits: 2, Misses: 1}, store.Stats())
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	current := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []location.Location{{Name: "Depok"}}, time.Minute))
	current = current.Add(2 * time.Minute)

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreNoTTL(t *testing.T) {
	store := NewMemoryStore()
	current := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []location.Location{{Name: "Bogor"}}, 0))
	current = current.Add(240 * time.Hour)
	_, ok, _ := store.Get(ctx, "k")
	require.True(t, ok)
}
