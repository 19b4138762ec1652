package openmeteo

import (
	"log/slog"
	"strings"
	"time"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

// Options configures the Open-Meteo client.
type Options struct {
	GeocodingURL      string
	ForecastURL       string
	Language          string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	BreakerFailures   uint32
	BreakerTimeout    time.Duration
}

// Client talks to the Open-Meteo geocoding and forecast APIs.
type Client struct {
	geocodingURL string
	forecastURL  string
	language     string
	geocoding    *transport
	forecast     *transport
}

// NewClient builds an API client. Empty URLs fall back to the public endpoints.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	logger = logger.With("component", "openmeteo.client")
	return &Client{
		geocodingURL: baseURL(opts.GeocodingURL, defaultGeocodingURL),
		forecastURL:  baseURL(opts.ForecastURL, defaultForecastURL),
		language:     firstNonEmpty(opts.Language, "id"),
		geocoding:    newTransport("open-meteo-geocoding", opts, logger),
		forecast:     newTransport("open-meteo-forecast", opts, logger),
	}
}

func baseURL(value, fallback string) string {
	url := strings.TrimSpace(value)
	if url == "" {
		url = fallback
	}
	return strings.TrimRight(url, "/")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
