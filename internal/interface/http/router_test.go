package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-dashboard/internal/domain/dashboard"
	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/internal/infra/config"
	"github.com/yanqian/weather-dashboard/internal/interface/http/views"
	apperrors "github.com/yanqian/weather-dashboard/pkg/errors"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
	"github.com/yanqian/weather-dashboard/pkg/util/clocktest"
)

var jakarta = location.Location{Name: "Jakarta", Admin1: "DKI Jakarta", Country: "Indonesia", Latitude: -6.2, Longitude: 106.8}

func TestRouter_SuggestionsSuccess(t *testing.T) {
	locs := &stubLocations{
		suggestFn: func(ctx context.Context, q string) ([]location.Location, error) {
			require.Equal(t, "Jak", q)
			return []location.Location{jakarta}, nil
		},
	}

	rec := performRequest(newRouterUnderTest(t, locs, &stubForecasts{}), http.MethodGet, "/api/v1/suggestions?q=Jak", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Suggestions []location.Location `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []location.Location{jakarta}, body.Suggestions)
}

func TestRouter_SuggestionsEmptyList(t *testing.T) {
	rec := performRequest(newRouterUnderTest(t, &stubLocations{}, &stubForecasts{}), http.MethodGet, "/api/v1/suggestions?q=Ja", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"suggestions":[]}`, rec.Body.String())
}

func TestRouter_ResolveErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "not found", err: apperrors.Wrap(apperrors.CodeNotFound, "no location matches", nil), status: http.StatusNotFound, code: "not_found"},
		{name: "upstream", err: apperrors.Wrap(apperrors.CodeResolutionFailed, "location lookup failed", errors.New("dial tcp")), status: http.StatusBadGateway, code: "resolution_failed"},
		{name: "empty", err: apperrors.Wrap(apperrors.CodeInvalidInput, "query cannot be empty", nil), status: http.StatusBadRequest, code: "invalid_input"},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, code: "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			locs := &stubLocations{
				resolveFn: func(ctx context.Context, q string) (location.Location, error) {
					return location.Location{}, tc.err
				},
			}
			rec := performRequest(newRouterUnderTest(t, locs, &stubForecasts{}), http.MethodGet, "/api/v1/locations/resolve?q=Atlantis", "")
			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, tc.code, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
		})
	}
}

func TestRouter_ResolveSuccess(t *testing.T) {
	locs := &stubLocations{
		resolveFn: func(ctx context.Context, q string) (location.Location, error) { return jakarta, nil },
	}
	rec := performRequest(newRouterUnderTest(t, locs, &stubForecasts{}), http.MethodGet, "/api/v1/locations/resolve?q=Jakarta", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got location.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, jakarta, got)
}

func TestRouter_ForecastSuccess(t *testing.T) {
	fc := &stubForecasts{
		renderFn: func(ctx context.Context, loc location.Location) (forecast.Dashboard, error) {
			require.Equal(t, jakarta, loc)
			return forecast.Dashboard{AreaName: loc.Name, AreaSub: loc.Subtitle(), Theme: forecast.ThemeDay}, nil
		},
	}
	payload := `{"name":"Jakarta","admin1":"DKI Jakarta","country":"Indonesia","latitude":-6.2,"longitude":106.8}`

	rec := performRequest(newRouterUnderTest(t, &stubLocations{}, fc), http.MethodPost, "/api/v1/forecasts", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var got forecast.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Jakarta", got.AreaName)
	require.Equal(t, "DKI Jakarta", got.AreaSub)
}

func TestRouter_ForecastInvalidRequest(t *testing.T) {
	server := newRouterUnderTest(t, &stubLocations{}, &stubForecasts{})

	for _, payload := range []string{`{"name":1}`, `{"name":"Jakarta","longitude":106.8}`, `{"name":"X","latitude":120,"longitude":0}`} {
		rec := performRequest(server, http.MethodPost, "/api/v1/forecasts", payload)
		require.Equal(t, http.StatusBadRequest, rec.Code, payload)
		require.Equal(t, "invalid_request", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
	}
}

func TestRouter_ForecastUpstreamFailure(t *testing.T) {
	fc := &stubForecasts{
		renderFn: func(ctx context.Context, loc location.Location) (forecast.Dashboard, error) {
			return forecast.Dashboard{}, apperrors.Wrap(apperrors.CodeForecastFailed, "forecast fetch failed", errors.New("status 503"))
		},
	}
	payload := `{"name":"Jakarta","latitude":-6.2,"longitude":106.8}`

	rec := performRequest(newRouterUnderTest(t, &stubLocations{}, fc), http.MethodPost, "/api/v1/forecasts", payload)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "forecast_failed", body["error"]["code"])
	require.Equal(t, "forecast fetch failed", body["error"]["message"])
	require.NotContains(t, rec.Body.String(), "status 503")
}

func TestRouter_ForecastBoundedByWriteTimeout(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	fc := &stubForecasts{
		renderFn: func(ctx context.Context, loc location.Location) (forecast.Dashboard, error) {
			deadline, hasDeadline = ctx.Deadline()
			return forecast.Dashboard{AreaName: loc.Name}, nil
		},
	}
	server := newRouterWithConfig(t, &stubLocations{}, fc, func(cfg *config.Config) {
		cfg.HTTP.WriteTimeout = 10 * time.Second
	})

	start := time.Now()
	rec := performRequest(server, http.MethodPost, "/api/v1/forecasts", `{"name":"Jakarta","latitude":-6.2,"longitude":106.8}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, hasDeadline)
	require.WithinDuration(t, start.Add(9*time.Second), deadline, time.Second)
	require.True(t, deadline.Before(start.Add(10*time.Second)))
}

func TestRouter_PageAutoLoadsDefaultPlace(t *testing.T) {
	var queries []string
	locs := &stubLocations{
		resolveFn: func(ctx context.Context, q string) (location.Location, error) {
			queries = append(queries, q)
			return jakarta, nil
		},
	}

	rec := performRequest(newRouterUnderTest(t, locs, &stubForecasts{}), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Equal(t, []string{"Jakarta"}, queries)
	require.Contains(t, rec.Body.String(), "DKI Jakarta")
	require.NotEmpty(t, sessionCookie(t, rec))
}

func TestRouter_PageAutoLoadFailureIsSilent(t *testing.T) {
	locs := &stubLocations{
		resolveFn: func(ctx context.Context, q string) (location.Location, error) {
			return location.Location{}, apperrors.Wrap(apperrors.CodeResolutionFailed, "location lookup failed", errors.New("offline"))
		},
	}

	rec := performRequest(newRouterUnderTest(t, locs, &stubForecasts{}), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "alert(")
	require.NotContains(t, rec.Body.String(), `id="weatherDashboard"`)
}

func TestRouter_PageExplicitSearchNotFound(t *testing.T) {
	server := newRouterUnderTest(t, &stubLocations{}, &stubForecasts{})

	rec := performRequest(server, http.MethodGet, "/?q=Atlantis", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Lokasi tidak ditemukan.")

	state := fetchState(t, server, sessionCookie(t, rec))
	require.Empty(t, state.Notification)
	require.False(t, state.Loading)
	require.Equal(t, "Atlantis", state.Query)
}

func TestRouter_PageSelectsSuggestion(t *testing.T) {
	var rendered location.Location
	fc := &stubForecasts{
		renderFn: func(ctx context.Context, loc location.Location) (forecast.Dashboard, error) {
			rendered = loc
			return forecast.Dashboard{AreaName: loc.Name, AreaSub: loc.Subtitle()}, nil
		},
	}

	rec := performRequest(newRouterUnderTest(t, &stubLocations{}, fc), http.MethodGet, "/?lat=-6.9&lon=107.6&name=Bandung&admin1=Jawa+Barat&country=Indonesia", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Bandung", rendered.Name)
	require.Equal(t, -6.9, rendered.Latitude)
	require.Contains(t, rec.Body.String(), "Jawa Barat")
}

func TestRouter_PageRejectsBadCoordinates(t *testing.T) {
	rendered := false
	fc := &stubForecasts{
		renderFn: func(ctx context.Context, loc location.Location) (forecast.Dashboard, error) {
			rendered = true
			return forecast.Dashboard{}, nil
		},
	}
	server := newRouterUnderTest(t, &stubLocations{}, fc)

	for _, query := range []string{"lat=abc&lon=1", "lat=NaN&lon=1", "lat=1&lon=NaN", "lat=nan&lon=nan", "lat=Inf&lon=1"} {
		rec := performRequest(server, http.MethodGet, "/?"+query, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, query)
		require.Equal(t, "invalid_request", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"], query)
	}
	require.False(t, rendered)
}

func TestRouter_SessionCookieRefreshedOnEachRequest(t *testing.T) {
	server := newRouterUnderTest(t, &stubLocations{}, &stubForecasts{})

	rec := performRequest(server, http.MethodGet, "/api/v1/session", "")
	first := sessionCookie(t, rec)
	require.Equal(t, 1800, first.MaxAge)

	rec = performRequest(server, http.MethodGet, "/api/v1/session", "", first)
	refreshed := sessionCookie(t, rec)
	require.Equal(t, first.Value, refreshed.Value)
	require.Equal(t, 1800, refreshed.MaxAge)
	require.True(t, refreshed.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, refreshed.SameSite)
}

func TestRouter_SessionFlow(t *testing.T) {
	locs := &stubLocations{
		resolveFn: func(ctx context.Context, q string) (location.Location, error) { return jakarta, nil },
	}
	server := newRouterUnderTest(t, locs, &stubForecasts{})

	rec := performRequest(server, http.MethodPost, "/api/v1/session/input", `{"query":"Ja"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)

	rec = performRequest(server, http.MethodPost, "/api/v1/session/search", `{"query":"Jakarta"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var state dashboard.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.True(t, state.DashboardVisible)
	require.Equal(t, "Jakarta", state.Dashboard.AreaName)

	rec = performRequest(server, http.MethodPost, "/api/v1/session/select", `{"location":{"name":"Bandung","latitude":-6.9,"longitude":107.6}}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.Equal(t, "Bandung", state.Query)
	require.Equal(t, "Bandung", state.Dashboard.AreaName)

	rec = performRequest(server, http.MethodPost, "/api/v1/session/dismiss", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	got := fetchState(t, server, cookie)
	require.Equal(t, "Bandung", got.Query)
	require.False(t, got.SuggestionsVisible)
}

func TestRouter_SessionSelectInvalid(t *testing.T) {
	rec := performRequest(newRouterUnderTest(t, &stubLocations{}, &stubForecasts{}), http.MethodPost, "/api/v1/session/select", `{"location":{"name":"Bandung"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Healthz(t *testing.T) {
	rec := performRequest(newRouterUnderTest(t, &stubLocations{}, &stubForecasts{}), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok","sessions":0,"cache":{"hits":4,"misses":1}}`, rec.Body.String())
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	server := newRouterUnderTest(t, &stubLocations{}, &stubForecasts{})

	rec := performRequest(server, http.MethodGet, "/healthz", "")
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRouter_CORSPreflight(t *testing.T) {
	server := newRouterUnderTest(t, &stubLocations{}, &stubForecasts{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/suggestions", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimit(t *testing.T) {
	server := newRouterWithConfig(t, &stubLocations{}, &stubForecasts{}, func(cfg *config.Config) {
		cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	})

	rec := performRequest(server, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(server, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func performRequest(server *http.Server, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func fetchState(t *testing.T, server *http.Server, cookie *http.Cookie) dashboard.State {
	t.Helper()
	rec := performRequest(server, http.MethodGet, "/api/v1/session", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var state dashboard.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	return state
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "wd_session" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func newRouterUnderTest(t *testing.T, locs location.Service, fc forecast.Service) *http.Server {
	return newRouterWithConfig(t, locs, fc, nil)
}

func newRouterWithConfig(t *testing.T, locs location.Service, fc forecast.Service, mutate func(*config.Config)) *http.Server {
	t.Helper()
	require.NoError(t, views.LoadTemplates())

	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		OpenMeteo: config.OpenMeteoConfig{Language: "id"},
		Search: config.SearchConfig{
			DefaultQuery:   "Jakarta",
			MinQueryLength: 3,
			Debounce:       400 * time.Millisecond,
		},
		Session: config.SessionConfig{IdleTTL: 30 * time.Minute, CookieName: "wd_session"},
	}
	if mutate != nil {
		mutate(cfg)
	}

	logger := newTestLogger()
	registry := dashboard.NewRegistry(dashboard.Config{
		DefaultQuery:   cfg.Search.DefaultQuery,
		MinQueryLength: cfg.Search.MinQueryLength,
		Debounce:       cfg.Search.Debounce,
		Language:       cfg.OpenMeteo.Language,
		IdleTTL:        cfg.Session.IdleTTL,
	}, locs, fc, clocktest.New(time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)), logger)
	handler := NewHandler(cfg, locs, fc, registry, stubCache{stats: metrics.CacheStats{Hits: 4, Misses: 1}}, logger)
	return NewRouter(cfg, handler, logger)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubLocations struct {
	suggestFn func(ctx context.Context, q string) ([]location.Location, error)
	resolveFn func(ctx context.Context, q string) (location.Location, error)
}

func (s *stubLocations) Suggest(ctx context.Context, q string) ([]location.Location, error) {
	if s.suggestFn != nil {
		return s.suggestFn(ctx, q)
	}
	return nil, nil
}

func (s *stubLocations) Resolve(ctx context.Context, q string) (location.Location, error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, q)
	}
	return location.Location{}, apperrors.Wrap(apperrors.CodeNotFound, "no location matches", nil)
}

type stubForecasts struct {
	renderFn func(ctx context.Context, loc location.Location) (forecast.Dashboard, error)
}

func (s *stubForecasts) Render(ctx context.Context, loc location.Location) (forecast.Dashboard, error) {
	if s.renderFn != nil {
		return s.renderFn(ctx, loc)
	}
	return forecast.Dashboard{Location: loc, AreaName: loc.Name, AreaSub: loc.Subtitle()}, nil
}

type stubCache struct {
	stats metrics.CacheStats
}

func (s stubCache) Stats() metrics.CacheStats { return s.stats }

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
