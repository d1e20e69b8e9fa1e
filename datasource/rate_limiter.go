package datasource

import (
	"context"
	"fmt"

	"weather-widget/models"

	"golang.org/x/time/rate"
)

// RateLimitedProvider wraps a Provider with separate limiters for the
// current weather and forecast endpoints. It only delays calls; a
// failed call is never retried.
type RateLimitedProvider struct {
	provider        Provider
	weatherLimiter  *rate.Limiter
	forecastLimiter *rate.Limiter
	name            string
}

// NewRateLimitedProvider creates a provider that implements both interfaces with rate limiting
// weatherRPS and forecastRPS are the maximum requests per second for weather and forecast APIs
// (fractional values allow less than one request per second); burst is the maximum burst size
func NewRateLimitedProvider(provider Provider, weatherRPS, forecastRPS float64, burst int) *RateLimitedProvider {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedProvider{
		provider:        provider,
		weatherLimiter:  rate.NewLimiter(rate.Limit(weatherRPS), burst),
		forecastLimiter: rate.NewLimiter(rate.Limit(forecastRPS), burst),
		name:            fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// GetWeather implements WeatherProvider interface with rate limiting
func (r *RateLimitedProvider) GetWeather(ctx context.Context, location string) (models.CurrentWeather, error) {
	if err := r.weatherLimiter.Wait(ctx); err != nil {
		return models.CurrentWeather{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.GetWeather(ctx, location)
}

// FetchForecast implements ForecastSource interface with rate limiting
func (r *RateLimitedProvider) FetchForecast(ctx context.Context, location string, days int) (models.ForecastData, error) {
	if err := r.forecastLimiter.Wait(ctx); err != nil {
		return models.ForecastData{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.FetchForecast(ctx, location, days)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

var _ Provider = (*RateLimitedProvider)(nil)
