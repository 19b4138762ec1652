package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/yanqian/weather-dashboard/internal/interface/http/views"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := views.LoadTemplates(); err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("failed to wire application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}
