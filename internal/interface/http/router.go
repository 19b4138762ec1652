package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-dashboard/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)

	router.GET("/", handler.Page)
	router.GET("/healthz", handler.Healthz)

	api := router.Group("/api/v1")
	{
		api.GET("/suggestions", handler.Suggestions)
		api.GET("/locations/resolve", handler.ResolveLocation)
		api.POST("/forecasts", handler.Forecast)

		session := api.Group("/session")
		session.GET("", handler.SessionState)
		session.POST("/input", handler.SessionInput)
		session.POST("/search", handler.SessionSearch)
		session.POST("/select", handler.SessionSelect)
		session.POST("/dismiss", handler.SessionDismiss)
		session.POST("/ack", handler.SessionAcknowledge)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
