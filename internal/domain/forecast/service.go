package forecast

import (
	"context"
	"log/slog"

	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/internal/domain/weather"
	apperrors "github.com/yanqian/weather-dashboard/pkg/errors"
	"github.com/yanqian/weather-dashboard/pkg/util"
)

// Service renders the dashboard for a resolved location.
type Service interface {
	// Render fetches one forecast and projects it. Any fetch failure aborts
	// the whole render; no partial dashboard is returned.
	Render(ctx context.Context, loc location.Location) (Dashboard, error)
}

// Source fetches forecast snapshots.
type Source interface {
	Fetch(ctx context.Context, latitude, longitude float64) (Snapshot, error)
}

type service struct {
	source  Source
	catalog *weather.Catalog
	clock   util.Clock
	logger  *slog.Logger
}

// NewService wires up the forecast renderer.
func NewService(cfg Config, source Source, clock util.Clock, logger *slog.Logger) Service {
	return &service{
		source:  source,
		catalog: weather.NewCatalog(cfg.Language),
		clock:   clock,
		logger:  logger.With("component", "forecast.service"),
	}
}

func (s *service) Render(ctx context.Context, loc location.Location) (Dashboard, error) {
	snap, err := s.source.Fetch(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return Dashboard{}, apperrors.Wrap(apperrors.CodeForecastFailed, "failed to fetch forecast", err)
	}
	dash := Project(loc, snap, s.clock.Now(), s.catalog)
	s.logger.Info("forecast rendered",
		"location", loc.Name,
		"hourly_points", len(snap.Hourly.Time),
		"daily_points", len(snap.Daily.Time),
		"uv_now", dash.Current.UV.Value,
	)
	return dash, nil
}
