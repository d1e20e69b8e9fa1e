package models

import (
	"time"
)

// MaxForecastDays is the largest daily forecast the provider returns
const MaxForecastDays = 16

// DailyForecast represents a single day of a daily forecast
type DailyForecast struct {
	Time          time.Time `json:"time"`          // start of the forecast day
	DayTempKelvin float64   `json:"dayTempKelvin"` // daytime temperature
	Condition     string    `json:"condition"`     // primary condition code
	Description   string    `json:"description"`   // short text description
}

// Celsius returns the daytime temperature converted from Kelvin
func (d DailyForecast) Celsius() float64 {
	return KelvinToCelsius(d.DayTempKelvin)
}

// ForecastData represents a daily forecast from a provider
type ForecastData struct {
	Provider string          `json:"provider"` // weather data provider name
	Location string          `json:"location"` // location the forecast was requested for
	Days     []DailyForecast `json:"days"`     // ordered by time, at most MaxForecastDays
	Updated  time.Time       `json:"updated"`  // when this forecast was fetched
}
