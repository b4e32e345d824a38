package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardsapi/internal/config"
	"cardsapi/internal/gallery"
	"cardsapi/internal/logger"
	"cardsapi/internal/routes"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Log.Fatalf("Config load error: %v", err)
	}
	if cfg == nil {
		return
	}
	logger.Init(cfg.Debug)

	fields, err := gallery.LoadFields(cfg.SchemaFile)
	if err != nil {
		logger.Log.Fatalf("Schema load error: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      routes.NewRouter(cfg, fields),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeoutDuration() + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.Infof("Cards API running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Forced shutdown: %v", err)
	}
	logger.Log.Info("Server stopped")
}
