package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weather-widget/models"
)

// DefaultOpenWeatherMapURL is the OpenWeatherMap API root
const DefaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"

// maxErrorBody bounds how much of an error response is kept in StatusError
const maxErrorBody = 512

// maxResponseBody bounds how much of any response is read
const maxResponseBody = 1 << 20

// OpenWeatherMapProvider implements both WeatherProvider and ForecastSource interfaces.
// Temperatures are requested without a units parameter, so the API answers in Kelvin.
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider.
// An empty baseURL selects DefaultOpenWeatherMapURL.
func NewOpenWeatherMapProvider(apiKey, baseURL string, timeout time.Duration) *OpenWeatherMapProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherMapURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

type owmCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type owmCurrentResponse struct {
	Name     string         `json:"name"`
	Timezone *int           `json:"timezone"`
	Weather  []owmCondition `json:"weather"`
	Main     struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

type owmDay struct {
	Dt   int64 `json:"dt"`
	Temp struct {
		Day float64 `json:"day"`
	} `json:"temp"`
	Weather []owmCondition `json:"weather"`
}

// owmDailyResponse accepts both "daily" and "list"; the daily forecast
// endpoint has used both names for the same array
type owmDailyResponse struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	Daily []owmDay `json:"daily"`
	List  []owmDay `json:"list"`
}

// GetWeather fetches current weather for a city name
func (p *OpenWeatherMapProvider) GetWeather(ctx context.Context, location string) (models.CurrentWeather, error) {
	params := url.Values{}
	params.Add("q", location)
	params.Add("appid", p.apiKey)

	var response owmCurrentResponse
	if err := p.get(ctx, "weather", params, &response); err != nil {
		return models.CurrentWeather{}, err
	}

	data := models.CurrentWeather{
		Provider:       p.Name(),
		Location:       response.Name,
		TimezoneOffset: response.Timezone,
		TempKelvin:     response.Main.Temp,
	}
	if len(response.Weather) > 0 {
		data.Condition = response.Weather[0].Main
		data.Description = response.Weather[0].Description
	}
	return data, nil
}

// FetchForecast fetches a daily forecast for a city name.
// days is capped at models.MaxForecastDays.
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, location string, days int) (models.ForecastData, error) {
	if days <= 0 || days > models.MaxForecastDays {
		days = models.MaxForecastDays
	}

	params := url.Values{}
	params.Add("q", location)
	params.Add("cnt", strconv.Itoa(days))
	params.Add("appid", p.apiKey)

	var response owmDailyResponse
	if err := p.get(ctx, "forecast/daily", params, &response); err != nil {
		return models.ForecastData{}, err
	}

	items := response.Daily
	if len(items) == 0 {
		items = response.List
	}
	if len(items) > days {
		items = items[:days]
	}

	forecast := models.ForecastData{
		Provider: p.Name(),
		Location: location,
		Days:     make([]models.DailyForecast, 0, len(items)),
		Updated:  time.Now(),
	}
	for _, item := range items {
		day := models.DailyForecast{
			Time:          time.Unix(item.Dt, 0),
			DayTempKelvin: item.Temp.Day,
		}
		if len(item.Weather) > 0 {
			day.Condition = item.Weather[0].Main
			day.Description = item.Weather[0].Description
		}
		forecast.Days = append(forecast.Days, day)
	}

	return forecast, nil
}

// get performs a GET against endpoint and decodes a 200 response into target
func (p *OpenWeatherMapProvider) get(ctx context.Context, endpoint string, params url.Values, target any) error {
	reqURL := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &StatusError{
			Provider:   p.Name(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Ensure OpenWeatherMapProvider implements Provider
var _ Provider = (*OpenWeatherMapProvider)(nil)
