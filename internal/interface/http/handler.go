package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-dashboard/internal/domain/dashboard"
	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/internal/domain/weather"
	"github.com/yanqian/weather-dashboard/internal/infra/config"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
)

// CacheStats exposes geocode cache counters for the health endpoint.
type CacheStats interface {
	Stats() metrics.CacheStats
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	locations location.Service
	forecasts forecast.Service
	sessions  *dashboard.Registry
	cache     CacheStats
	catalog   *weather.Catalog
	page      pageConfig
	logger    *slog.Logger
}

type pageConfig struct {
	cookieName     string
	cookieTTL      time.Duration
	debounce       time.Duration
	minQueryLength int
	// searchBudget bounds resolve plus render so the response fits in the
	// server's write timeout. Zero means unbounded.
	searchBudget time.Duration
}

// NewHandler constructs the root HTTP handler.
func NewHandler(cfg *config.Config, locations location.Service, forecasts forecast.Service, sessions *dashboard.Registry, cache CacheStats, logger *slog.Logger) *Handler {
	return &Handler{
		locations: locations,
		forecasts: forecasts,
		sessions:  sessions,
		cache:     cache,
		catalog:   weather.NewCatalog(cfg.OpenMeteo.Language),
		page: pageConfig{
			cookieName:     cfg.Session.CookieName,
			cookieTTL:      cfg.Session.IdleTTL,
			debounce:       cfg.Search.Debounce,
			minQueryLength: cfg.Search.MinQueryLength,
			searchBudget:   searchBudget(cfg.HTTP.WriteTimeout),
		},
		logger: logger.With("component", "http.handler"),
	}
}

// searchBudget leaves a tenth of the write timeout for writing the response.
func searchBudget(writeTimeout time.Duration) time.Duration {
	if writeTimeout <= 0 {
		return 0
	}
	return writeTimeout - writeTimeout/10
}

func (h *Handler) searchContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.page.searchBudget <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.page.searchBudget)
}

// Suggestions returns autocomplete candidates for the typed text.
func (h *Handler) Suggestions(c *gin.Context) {
	results, err := h.locations.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	if results == nil {
		results = []location.Location{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": results})
}

// ResolveLocation returns the best match for a search query.
func (h *Handler) ResolveLocation(c *gin.Context) {
	ctx, cancel := h.searchContext(c)
	defer cancel()
	loc, err := h.locations.Resolve(ctx, c.Query("q"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, loc)
}

type forecastRequest struct {
	Name      string   `json:"name" binding:"required"`
	Admin1    string   `json:"admin1"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

func (r forecastRequest) location() location.Location {
	return location.Location{
		Name:      r.Name,
		Admin1:    r.Admin1,
		Country:   r.Country,
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
	}
}

// Forecast renders the dashboard projection for a chosen location.
func (h *Handler) Forecast(c *gin.Context) {
	var req forecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	ctx, cancel := h.searchContext(c)
	defer cancel()
	dash, err := h.forecasts.Render(ctx, req.location())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Healthz reports liveness together with cache and session counters.
func (h *Handler) Healthz(c *gin.Context) {
	body := gin.H{
		"status":   "ok",
		"sessions": h.sessions.Len(),
	}
	if h.cache != nil {
		body["cache"] = h.cache.Stats()
	}
	c.JSON(http.StatusOK, body)
}
