// Package widget holds the weather widget: the state for one city query,
// the fetch sequence that fills it, and the View it renders from.
//
// A Widget is shared by the HTTP handlers and the clock goroutine, so
// its state sits behind a mutex. The mutex is never held while a
// provider request is in flight.
//
// Overlapping fetch cycles are not guarded. When the query changes while
// a cycle is still waiting on the provider, the late response is stored
// anyway and replaces whatever the newer cycle wrote or cleared.
package widget

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"weather-widget/clock"
	"weather-widget/datasource"
	"weather-widget/models"

	"github.com/google/uuid"
)

// Options configures a Widget. Zero values select defaults.
type Options struct {
	ForecastDays int
	Clock        *clock.Clock
	Logger       *slog.Logger
}

// Widget is the weather widget for a single city query
type Widget struct {
	provider datasource.Provider
	clock    *clock.Clock
	days     int
	logger   *slog.Logger

	mu         sync.Mutex
	query      string
	current    *models.CurrentWeather
	forecast   *models.ForecastData
	offset     *int
	background string
	prompt     string
	stopClock  func()
}

// New creates a widget backed by provider
func New(provider datasource.Provider, opts Options) *Widget {
	if opts.ForecastDays <= 0 || opts.ForecastDays > models.MaxForecastDays {
		opts.ForecastDays = models.MaxForecastDays
	}
	if opts.Clock == nil {
		opts.Clock = clock.New(clock.DefaultInterval)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Widget{
		provider:   provider,
		clock:      opts.Clock,
		days:       opts.ForecastDays,
		logger:     opts.Logger,
		background: InitialBackground,
	}
}

// Activate starts the clock tick. It is a no-op while already active.
func (w *Widget) Activate(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopClock != nil {
		return
	}
	w.stopClock = w.clock.Start(ctx)
}

// Deactivate stops the clock tick. Safe to call more than once.
func (w *Widget) Deactivate() {
	w.mu.Lock()
	stop := w.stopClock
	w.stopClock = nil
	w.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// Active reports whether the clock tick is running
func (w *Widget) Active() bool {
	return w.clock.Running()
}

// Query returns the current city query
func (w *Widget) Query() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.query
}

// SetQuery stores a new city query and clears the weather, forecast and
// offset derived from the previous one. The background stays until the
// next result replaces it. It reports whether a fetch should follow.
func (w *Widget) SetQuery(city string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.query = city
	w.current = nil
	w.forecast = nil
	w.offset = nil
	w.prompt = ""

	return !isBlank(city)
}

// QueryChanged handles an edited city: state is cleared synchronously,
// then a fetch runs when the new query is not blank. Editing the city to
// blank or whitespace is not a fetch trigger, so it never prompts; only
// an explicit Fetch does.
func (w *Widget) QueryChanged(ctx context.Context, city string) error {
	if !w.SetQuery(city) {
		return nil
	}
	return w.Fetch(ctx)
}

// Fetch requests current weather and then the daily forecast for the
// current query. It returns nil, *ValidationError, *FetchError (nothing
// stored) or *PartialDataError (current weather stored, no forecast).
func (w *Widget) Fetch(ctx context.Context) error {
	w.mu.Lock()
	city := w.query
	if isBlank(city) {
		w.prompt = PromptEmptyCity
		w.mu.Unlock()
		return &ValidationError{Prompt: PromptEmptyCity}
	}
	w.prompt = ""
	w.mu.Unlock()

	cycle := uuid.NewString()
	logger := w.logger.With("city", city, "cycle", cycle)
	start := time.Now()

	logger.Debug("fetching current weather")
	current, err := w.provider.GetWeather(ctx, city)
	if err != nil {
		return newFetchError(StageCurrent, city, cycle, err)
	}

	w.mu.Lock()
	w.current = &current
	if current.TimezoneOffset != nil {
		offset := *current.TimezoneOffset
		w.offset = &offset
	}
	w.background = BackgroundFor(strings.ToLower(current.Condition))
	w.mu.Unlock()

	logger.Debug("fetching forecast", "days", w.days)
	forecast, err := w.provider.FetchForecast(ctx, city, w.days)
	if err != nil {
		return &PartialDataError{Err: newFetchError(StageForecast, city, cycle, err)}
	}

	w.mu.Lock()
	w.forecast = &forecast
	w.mu.Unlock()

	logger.Info("weather updated",
		"location", current.Location,
		"forecast_days", len(forecast.Days),
		"duration", time.Since(start),
	)
	return nil
}

// LogFetchError logs the outcome of Fetch. Validation errors are left to
// the prompt shown to the user; fetch errors are only logged.
func LogFetchError(logger *slog.Logger, err error) {
	if err == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	var validationErr *ValidationError
	var partialErr *PartialDataError
	var fetchErr *FetchError
	switch {
	case errors.As(err, &validationErr):
		logger.Debug("fetch skipped", "reason", validationErr.Prompt)
	case errors.As(err, &partialErr):
		logger.Warn("forecast unavailable, showing current weather only", fetchAttrs(partialErr.Err)...)
	case errors.As(err, &fetchErr):
		logger.Error("failed to fetch weather", fetchAttrs(fetchErr)...)
	default:
		logger.Error("failed to fetch weather", "err", err)
	}
}

func fetchAttrs(e *FetchError) []any {
	return []any{
		"city", e.City,
		"cycle", e.Cycle,
		"stage", string(e.Stage),
		"status", e.StatusCode,
		"err", e.Err,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
