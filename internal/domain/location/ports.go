package location

import (
	"context"
	"time"
)

// Geocoder looks up places by free-text name.
type Geocoder interface {
	Search(ctx context.Context, name string, count int) ([]Location, error)
}

// Cache stores geocoding results keyed by normalized query.
type Cache interface {
	Get(ctx context.Context, key string) ([]Location, bool, error)
	Set(ctx context.Context, key string, locations []Location, ttl time.Duration) error
}
