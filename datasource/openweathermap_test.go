package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testAPIKey = "test-key"

const currentBody = `{
	"name": "Paris",
	"timezone": 3600,
	"weather": [{"main": "Rain", "description": "light rain"}],
	"main": {"temp": 285.5}
}`

const dailyBody = `{
	"city": {"name": "Paris"},
	"daily": [
		{"dt": 1700000000, "temp": {"day": 280.15}, "weather": [{"main": "Clouds", "description": "overcast clouds"}]},
		{"dt": 1700086400, "temp": {"day": 281.15}, "weather": [{"main": "Clear", "description": "clear sky"}]}
	]
}`

func newTestProvider(baseURL string) *OpenWeatherMapProvider {
	return NewOpenWeatherMapProvider(testAPIKey, baseURL, 5*time.Second)
}

func TestGetWeatherSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("expected path /weather, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("q"); got != "Paris" {
			t.Errorf("expected q=Paris, got %s", got)
		}
		if got := q.Get("appid"); got != testAPIKey {
			t.Errorf("expected appid=%s, got %s", testAPIKey, got)
		}
		if q.Has("units") {
			t.Errorf("units must not be sent, temperatures are expected in Kelvin")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(currentBody))
	}))
	defer srv.Close()

	got, err := newTestProvider(srv.URL).GetWeather(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Location != "Paris" {
		t.Errorf("expected location Paris, got %s", got.Location)
	}
	if got.TimezoneOffset == nil || *got.TimezoneOffset != 3600 {
		t.Errorf("expected timezone offset 3600, got %v", got.TimezoneOffset)
	}
	if got.Condition != "Rain" || got.Description != "light rain" {
		t.Errorf("unexpected condition %q / %q", got.Condition, got.Description)
	}
	if got.TempKelvin != 285.5 {
		t.Errorf("expected temp 285.5, got %f", got.TempKelvin)
	}
}

func TestGetWeatherWithoutTimezone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "Nowhere", "weather": [], "main": {"temp": 273.15}}`))
	}))
	defer srv.Close()

	got, err := newTestProvider(srv.URL).GetWeather(context.Background(), "Nowhere")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.HasOffset() {
		t.Errorf("expected no offset, got %d", *got.TimezoneOffset)
	}
	if got.Condition != "" {
		t.Errorf("expected empty condition, got %q", got.Condition)
	}
}

func TestGetWeatherNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).GetWeather(context.Background(), "Atlantis")
	if err == nil {
		t.Fatal("expected error for 404 response, got nil")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", statusErr.StatusCode)
	}
	expected := `OpenWeatherMap API error (status 404): {"cod":"404","message":"city not found"}`
	if err.Error() != expected {
		t.Errorf("expected error %q, got %q", expected, err.Error())
	}
}

func TestGetWeatherMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).GetWeather(context.Background(), "Paris")
	if err == nil {
		t.Fatal("expected decode error, got nil")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("decode failure must not be reported as a status error")
	}
}

func TestGetWeatherOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"`))
		w.Write([]byte(strings.Repeat("a", 2*maxResponseBody)))
		w.Write([]byte(`"}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).GetWeather(context.Background(), "Paris")
	if err == nil {
		t.Fatal("expected a truncated body to fail decoding")
	}
	if !strings.Contains(err.Error(), "failed to parse response") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestGetWeatherContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestProvider(srv.URL).GetWeather(ctx, "Paris")
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

func TestFetchForecastSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast/daily" {
			t.Errorf("expected path /forecast/daily, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("q"); got != "Paris" {
			t.Errorf("expected q=Paris, got %s", got)
		}
		if got := q.Get("cnt"); got != "16" {
			t.Errorf("expected cnt=16, got %s", got)
		}
		if got := q.Get("appid"); got != testAPIKey {
			t.Errorf("expected appid=%s, got %s", testAPIKey, got)
		}
		w.Write([]byte(dailyBody))
	}))
	defer srv.Close()

	got, err := newTestProvider(srv.URL).FetchForecast(context.Background(), "Paris", 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got.Days))
	}
	first := got.Days[0]
	if !first.Time.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("unexpected first day time %v", first.Time)
	}
	if first.DayTempKelvin != 280.15 {
		t.Errorf("expected day temp 280.15, got %f", first.DayTempKelvin)
	}
	if first.Condition != "Clouds" || first.Description != "overcast clouds" {
		t.Errorf("unexpected condition %q / %q", first.Condition, first.Description)
	}
	if got.Location != "Paris" {
		t.Errorf("expected location Paris, got %s", got.Location)
	}
}

func TestFetchForecastListField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"list": [
			{"dt": 1, "temp": {"day": 270}, "weather": [{"main": "Snow", "description": "snow"}]},
			{"dt": 2, "temp": {"day": 271}, "weather": [{"main": "Snow", "description": "snow"}]},
			{"dt": 3, "temp": {"day": 272}, "weather": [{"main": "Snow", "description": "snow"}]}
		]}`))
	}))
	defer srv.Close()

	got, err := newTestProvider(srv.URL).FetchForecast(context.Background(), "Oslo", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Days) != 2 {
		t.Fatalf("expected forecast truncated to 2 days, got %d", len(got.Days))
	}
	if got.Days[1].Condition != "Snow" {
		t.Errorf("expected Snow, got %q", got.Days[1].Condition)
	}
}

func TestFetchForecastServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).FetchForecast(context.Background(), "Paris", 16)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", statusErr.StatusCode)
	}
}
