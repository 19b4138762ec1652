package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	OpenMeteo OpenMeteoConfig `yaml:"openMeteo"`
	Search    SearchConfig    `yaml:"search"`
	Cache     CacheConfig     `yaml:"cache"`
	Session   SessionConfig   `yaml:"session"`
	Log       LogConfig       `yaml:"log"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// OpenMeteoConfig points at the geocoding and forecast APIs.
type OpenMeteoConfig struct {
	GeocodingURL      string        `yaml:"geocodingUrl"`
	ForecastURL       string        `yaml:"forecastUrl"`
	Language          string        `yaml:"language"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	Burst             int           `yaml:"burst"`
	Breaker           BreakerConfig `yaml:"breaker"`
}

// BreakerConfig tunes the upstream circuit breaker.
type BreakerConfig struct {
	ConsecutiveFailures uint32        `yaml:"consecutiveFailures"`
	OpenTimeout         time.Duration `yaml:"openTimeout"`
}

// SearchConfig controls place lookup behaviour.
type SearchConfig struct {
	DefaultQuery    string        `yaml:"defaultQuery"`
	MinQueryLength  int           `yaml:"minQueryLength"`
	SuggestionLimit int           `yaml:"suggestionLimit"`
	Debounce        time.Duration `yaml:"debounce"`
}

// CacheConfig controls geocoding result caching.
type CacheConfig struct {
	TTL   time.Duration `yaml:"ttl"`
	Redis RedisConfig   `yaml:"redis"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// SessionConfig controls per-visitor dashboard state.
type SessionConfig struct {
	IdleTTL    time.Duration `yaml:"idleTtl"`
	CookieName string        `yaml:"cookieName"`
}

// LogConfig selects level and output format ("json" or "text").
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("OPEN_METEO_GEOCODING_URL"); v != "" {
		cfg.OpenMeteo.GeocodingURL = v
	}
	if v := os.Getenv("OPEN_METEO_FORECAST_URL"); v != "" {
		cfg.OpenMeteo.ForecastURL = v
	}
	if v := os.Getenv("OPEN_METEO_LANGUAGE"); v != "" {
		cfg.OpenMeteo.Language = v
	}
	if v := os.Getenv("OPEN_METEO_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.OpenMeteo.Timeout = parsed
		}
	}
	if v := os.Getenv("OPEN_METEO_RPS"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.OpenMeteo.RequestsPerSecond = parsed
		}
	}
	if v := os.Getenv("SEARCH_DEFAULT_QUERY"); v != "" {
		cfg.Search.DefaultQuery = v
	}
	if v := os.Getenv("SEARCH_DEBOUNCE"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Search.Debounce = parsed
		}
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("CACHE_REDIS_ENABLED"); v != "" {
		cfg.Cache.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("CACHE_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("SESSION_IDLE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Session.IdleTTL = parsed
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		OpenMeteo: OpenMeteoConfig{
			GeocodingURL:      "https://geocoding-api.open-meteo.com/v1/search",
			ForecastURL:       "https://api.open-meteo.com/v1/forecast",
			Language:          "id",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Burst:             10,
			Breaker: BreakerConfig{
				ConsecutiveFailures: 5,
				OpenTimeout:         30 * time.Second,
			},
		},
		Search: SearchConfig{
			DefaultQuery:    "Jakarta",
			MinQueryLength:  3,
			SuggestionLimit: 5,
			Debounce:        400 * time.Millisecond,
		},
		Cache: CacheConfig{
			TTL: 24 * time.Hour,
		},
		Session: SessionConfig{
			IdleTTL:    30 * time.Minute,
			CookieName: "wd_session",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.OpenMeteo.GeocodingURL) == "" {
		return errors.New("openMeteo.geocodingUrl cannot be empty")
	}
	if strings.TrimSpace(c.OpenMeteo.ForecastURL) == "" {
		return errors.New("openMeteo.forecastUrl cannot be empty")
	}
	if c.OpenMeteo.Timeout <= 0 {
		return errors.New("openMeteo.timeout must be positive")
	}
	if c.OpenMeteo.RequestsPerSecond < 0 {
		return errors.New("openMeteo.requestsPerSecond cannot be negative")
	}
	if strings.TrimSpace(c.Search.DefaultQuery) == "" {
		return errors.New("search.defaultQuery cannot be empty")
	}
	if c.Search.MinQueryLength <= 0 {
		return errors.New("search.minQueryLength must be positive")
	}
	if c.Search.SuggestionLimit <= 0 {
		return errors.New("search.suggestionLimit must be positive")
	}
	if c.Search.Debounce < 0 {
		return errors.New("search.debounce cannot be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	if c.Cache.Redis.Enabled && strings.TrimSpace(c.Cache.Redis.Addr) == "" {
		return errors.New("cache.redis.addr cannot be empty when redis cache is enabled")
	}
	if c.Session.IdleTTL <= 0 {
		return errors.New("session.idleTtl must be positive")
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		return errors.New("session.cookieName cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
