//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weather-dashboard/internal/bootstrap"
	"github.com/yanqian/weather-dashboard/internal/domain/dashboard"
	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/internal/domain/location"
	"github.com/yanqian/weather-dashboard/internal/infra/config"
	"github.com/yanqian/weather-dashboard/internal/infra/openmeteo"
	httpiface "github.com/yanqian/weather-dashboard/internal/interface/http"
	"github.com/yanqian/weather-dashboard/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideLocationConfig,
		provideForecastConfig,
		provideDashboardConfig,
		provideOpenMeteoClient,
		provideClock,
		provideGeocodeCache,
		provideLocationCache,
		provideCacheStats,
		location.NewService,
		forecast.NewService,
		dashboard.NewRegistry,
		wire.Bind(new(location.Geocoder), new(*openmeteo.Client)),
		wire.Bind(new(forecast.Source), new(*openmeteo.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
