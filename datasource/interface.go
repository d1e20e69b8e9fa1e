package datasource

import (
	"context"

	"weather-widget/models"
)

// WeatherProvider is an interface for services that can fetch current weather data
type WeatherProvider interface {
	// GetWeather fetches current weather for a city name
	GetWeather(ctx context.Context, location string) (models.CurrentWeather, error)

	// Name returns the provider's name
	Name() string
}

// ForecastSource is an interface for services that can fetch daily forecasts
type ForecastSource interface {
	// FetchForecast fetches a daily forecast for a city name covering the given number of days
	FetchForecast(ctx context.Context, location string, days int) (models.ForecastData, error)

	// Name returns the source's name
	Name() string
}

// Provider serves both current weather and forecasts
type Provider interface {
	WeatherProvider
	ForecastSource
}
