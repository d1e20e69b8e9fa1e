package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"weather-widget/api"
	"weather-widget/datasource"
	"weather-widget/widget"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the server on")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded", "err", err)
	}

	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	if config.OpenWeatherMap.APIKey == "" {
		logger.Warn("no OpenWeatherMap API key configured, requests will be rejected", "env", datasource.APIKeyEnv)
	}

	if _, err := os.Stat(config.AssetDir); err != nil {
		logger.Warn("background asset directory not found, images will 404", "dir", config.AssetDir, "err", err)
	}

	var provider datasource.Provider = datasource.NewOpenWeatherMapProvider(
		config.OpenWeatherMap.APIKey,
		config.OpenWeatherMap.BaseURL,
		config.Timeout(),
	)
	if *enableRateLimiting {
		provider = datasource.NewRateLimitedProvider(provider,
			config.RateLimit.WeatherRPS, config.RateLimit.ForecastRPS, config.RateLimit.Burst)
		logger.Info("applied rate limiting", "provider", provider.Name(),
			"weather_rps", config.RateLimit.WeatherRPS, "forecast_rps", config.RateLimit.ForecastRPS)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := widget.New(provider, widget.Options{
		ForecastDays: config.ForecastDays,
		Logger:       logger,
	})
	w.Activate(ctx)
	defer w.Deactivate()

	server := api.NewServer(w, *port, config.AssetDir, logger)

	// Start the API server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		logger.Error("server stopped", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("shutdown complete")
}
