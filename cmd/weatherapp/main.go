package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/swelljoe/weatherapp/internal/config"
	"github.com/swelljoe/weatherapp/internal/display"
	"github.com/swelljoe/weatherapp/internal/handlers"
	"github.com/swelljoe/weatherapp/internal/logging"
	"github.com/swelljoe/weatherapp/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel)
	defer logger.Sync()

	if cfg.APIKey == "" {
		logger.Warn("WEATHER_API_KEY is not set, lookups will be rejected by the provider")
	}

	srv := newServer(cfg, logger)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", "http://localhost"+srv.Addr),
			zap.String("api_url", cfg.APIURL),
			zap.Duration("timeout", cfg.Timeout),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-stop:
	}

	logger.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// newServer wires the weather client, presenter and routes into an
// http.Server listening on the configured port
func newServer(cfg *config.Config, logger *zap.Logger) *http.Server {
	client := weather.NewClient(cfg.APIKey, cfg.APIURL, cfg.Timeout, logger)
	presenter := display.New(client, logger)
	h := handlers.New(presenter, logger)

	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
