package models

// KelvinOffset is the difference between the Kelvin and Celsius scales
const KelvinOffset = 273.15

// CurrentWeather represents the current conditions for a resolved location
type CurrentWeather struct {
	Provider       string  `json:"provider"`
	Location       string  `json:"location"`       // resolved location name
	TimezoneOffset *int    `json:"timezoneOffset"` // seconds east of UTC, nil when the provider omits it
	Condition      string  `json:"condition"`      // primary condition code, e.g. "Clear"
	Description    string  `json:"description"`    // human readable description
	TempKelvin     float64 `json:"tempKelvin"`
}

// Celsius returns the temperature converted from Kelvin
func (w CurrentWeather) Celsius() float64 {
	return KelvinToCelsius(w.TempKelvin)
}

// HasOffset reports whether the provider returned a UTC offset
func (w CurrentWeather) HasOffset() bool {
	return w.TimezoneOffset != nil
}

// KelvinToCelsius converts a Kelvin temperature to Celsius
func KelvinToCelsius(kelvin float64) float64 {
	return kelvin - KelvinOffset
}
