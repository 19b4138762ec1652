package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/yanqian/weather-dashboard/pkg/errors"
)

// Service resolves free text into place candidates.
type Service interface {
	// Suggest returns up to SuggestionLimit candidates. Queries shorter than
	// MinQueryLength return nothing without contacting the geocoder.
	Suggest(ctx context.Context, query string) ([]Location, error)
	// Resolve returns the single best match for query.
	Resolve(ctx context.Context, query string) (Location, error)
}

type service struct {
	cfg      Config
	geocoder Geocoder
	cache    Cache
	group    singleflight.Group
	logger   *slog.Logger
}

// NewService wires up the location domain.
func NewService(cfg Config, geocoder Geocoder, cache Cache, logger *slog.Logger) Service {
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = 3
	}
	if cfg.SuggestionLimit <= 0 {
		cfg.SuggestionLimit = 5
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 10 * time.Second
	}
	return &service{
		cfg:      cfg,
		geocoder: geocoder,
		cache:    cache,
		logger:   logger.With("component", "location.service"),
	}
}

func (s *service) Suggest(ctx context.Context, query string) ([]Location, error) {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < s.cfg.MinQueryLength {
		return nil, nil
	}
	results, err := s.lookup(ctx, trimmed, s.cfg.SuggestionLimit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeResolutionFailed, "suggestion lookup failed", err)
	}
	if len(results) > s.cfg.SuggestionLimit {
		results = results[:s.cfg.SuggestionLimit]
	}
	return results, nil
}

func (s *service) Resolve(ctx context.Context, query string) (Location, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return Location{}, apperrors.Wrap(apperrors.CodeInvalidInput, "query cannot be empty", nil)
	}
	results, err := s.lookup(ctx, trimmed, 1)
	if err != nil {
		return Location{}, apperrors.Wrap(apperrors.CodeResolutionFailed, "location lookup failed", err)
	}
	if len(results) == 0 {
		return Location{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("no location matches %q", trimmed), nil)
	}
	s.logger.Info("location resolved", "query", trimmed, "name", results[0].Name, "country", results[0].Country)
	return results[0], nil
}

func (s *service) lookup(ctx context.Context, query string, count int) ([]Location, error) {
	key := s.cacheKey(query, count)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("geocode cache read failed", "key", key, "error", err)
	} else if ok {
		return cached, nil
	}

	// The shared call outlives any single caller; each caller only waits on
	// its own context.
	ch := s.group.DoChan(key, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.LookupTimeout)
		defer cancel()
		return s.geocoder.Search(flightCtx, query, count)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	results, _ := res.Val.([]Location)
	if res.Shared {
		s.logger.Debug("geocode lookup shared", "key", key)
	}
	if len(results) > 0 {
		if err := s.cache.Set(ctx, key, results, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("geocode cache write failed", "key", key, "error", err)
		}
	}
	return results, nil
}

func (s *service) cacheKey(query string, count int) string {
	return fmt.Sprintf("%s:%d:%s", s.cfg.Language, count, normalizeQuery(query))
}
