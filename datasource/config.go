package datasource

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"weather-widget/models"
)

// APIKeyEnv is the environment variable that overrides the configured API key
const APIKeyEnv = "OPENWEATHERMAP_API_KEY"

// Config represents the application configuration
type Config struct {
	OpenWeatherMap struct {
		APIKey         string `json:"apiKey"`
		BaseURL        string `json:"baseURL"`
		TimeoutSeconds int    `json:"timeoutSeconds"`
	} `json:"openWeatherMap"`

	// OpenWeatherMap free tier allows 60 calls/minute
	RateLimit struct {
		WeatherRPS  float64 `json:"weatherRPS"`
		ForecastRPS float64 `json:"forecastRPS"`
		Burst       int     `json:"burst"`
	} `json:"rateLimit"`

	// Directory served under /images/ for background assets
	AssetDir string `json:"assetDir"`

	// Days requested from the daily forecast endpoint
	ForecastDays int `json:"forecastDays"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.OpenWeatherMap.BaseURL = DefaultOpenWeatherMapURL
	config.OpenWeatherMap.TimeoutSeconds = 10
	config.RateLimit.WeatherRPS = 1.0
	config.RateLimit.ForecastRPS = 1.0
	config.RateLimit.Burst = 5
	config.AssetDir = "web/images"
	config.ForecastDays = models.MaxForecastDays
	return config
}

// LoadConfig loads configuration from a JSON file on top of DefaultConfig.
// A missing file is not an error. The API key from the environment, when
// set, takes precedence over the file.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.Open(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		defer file.Close()
		if err := json.NewDecoder(file).Decode(config); err != nil {
			return nil, fmt.Errorf("decode %s: %w", filename, err)
		}
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		config.OpenWeatherMap.APIKey = key
	}
	if config.ForecastDays <= 0 || config.ForecastDays > models.MaxForecastDays {
		config.ForecastDays = models.MaxForecastDays
	}

	return config, nil
}

// Timeout returns the provider HTTP timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.OpenWeatherMap.TimeoutSeconds) * time.Second
}
