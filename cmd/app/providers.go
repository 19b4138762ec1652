package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-dashboard/internal/domain/dashboard"
	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/internal/infra/config"
	"github.com/yanqian/weather-dashboard/internal/infra/geocache"
	"github.com/yanqian/weather-dashboard/internal/infra/openmeteo"
	httpiface "github.com/yanqian/weather-dashboard/internal/interface/http"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
	"github.com/yanqian/weather-dashboard/pkg/util"
)

// geocodeCache is satisfied by both geocache stores.
type geocodeCache interface {
	location.Cache
	Stats() metrics.CacheStats
}

func provideLocationConfig(cfg *config.Config) location.Config {
	return location.Config{
		MinQueryLength:  cfg.Search.MinQueryLength,
		SuggestionLimit: cfg.Search.SuggestionLimit,
		CacheTTL:        cfg.Cache.TTL,
		Language:        cfg.OpenMeteo.Language,
		LookupTimeout:   cfg.OpenMeteo.Timeout,
	}
}

func provideForecastConfig(cfg *config.Config) forecast.Config {
	return forecast.Config{Language: cfg.OpenMeteo.Language}
}

func provideDashboardConfig(cfg *config.Config) dashboard.Config {
	return dashboard.Config{
		DefaultQuery:   cfg.Search.DefaultQuery,
		MinQueryLength: cfg.Search.MinQueryLength,
		Debounce:       cfg.Search.Debounce,
		Language:       cfg.OpenMeteo.Language,
		IdleTTL:        cfg.Session.IdleTTL,
		SuggestTimeout: cfg.OpenMeteo.Timeout,
	}
}

func provideOpenMeteoClient(cfg *config.Config, logger *slog.Logger) *openmeteo.Client {
	return openmeteo.NewClient(openmeteo.Options{
		GeocodingURL:      cfg.OpenMeteo.GeocodingURL,
		ForecastURL:       cfg.OpenMeteo.ForecastURL,
		Language:          cfg.OpenMeteo.Language,
		Timeout:           cfg.OpenMeteo.Timeout,
		RequestsPerSecond: cfg.OpenMeteo.RequestsPerSecond,
		Burst:             cfg.OpenMeteo.Burst,
		BreakerFailures:   cfg.OpenMeteo.Breaker.ConsecutiveFailures,
		BreakerTimeout:    cfg.OpenMeteo.Breaker.OpenTimeout,
	}, logger)
}

func provideClock() util.Clock {
	return util.NewSystemClock()
}

func provideGeocodeCache(cfg *config.Config, logger *slog.Logger) geocodeCache {
	if cfg.Cache.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return geocache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return geocache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
		} else {
			logger.Info("geocode valkey cache enabled", "addr", cfg.Cache.Redis.Addr)
			return geocache.NewValkeyStore(client, "geocode")
		}
	}
	return geocache.NewMemoryStore()
}

func provideLocationCache(cache geocodeCache) location.Cache {
	return cache
}

func provideCacheStats(cache geocodeCache) httpiface.CacheStats {
	return cache
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
