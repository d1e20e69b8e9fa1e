package datasource

import (
	"context"
	"sync"
	"testing"
	"time"

	"weather-widget/models"
)

// countingProvider counts calls and answers immediately
type countingProvider struct {
	mu        sync.Mutex
	weather   int
	forecasts int
}

func (c *countingProvider) GetWeather(ctx context.Context, location string) (models.CurrentWeather, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.weather++
	return models.CurrentWeather{Location: location}, nil
}

func (c *countingProvider) FetchForecast(ctx context.Context, location string, days int) (models.ForecastData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forecasts++
	return models.ForecastData{Location: location}, nil
}

func (c *countingProvider) Name() string {
	return "Counting"
}

func TestRateLimitedProviderName(t *testing.T) {
	p := NewRateLimitedProvider(&countingProvider{}, 1, 1, 1)
	if got := p.Name(); got != "Counting [Rate Limited]" {
		t.Errorf("unexpected name %q", got)
	}
}

func TestRateLimitedProviderDelaysBeyondBurst(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, 20, 20, 1)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := p.GetWeather(ctx, "Paris"); err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
	}
	// burst of 1 at 20 rps: the 2nd and 3rd calls wait ~50ms each
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("expected calls to be throttled, took %v", elapsed)
	}
	if inner.weather != 3 {
		t.Errorf("expected 3 calls, got %d", inner.weather)
	}
}

func TestRateLimitedProviderSeparateLimiters(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, 0.01, 0.01, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := p.GetWeather(ctx, "Paris"); err != nil {
		t.Fatalf("weather call failed: %v", err)
	}
	// the forecast limiter still has its own token
	if _, err := p.FetchForecast(ctx, "Paris", 16); err != nil {
		t.Fatalf("forecast call failed: %v", err)
	}
}

func TestRateLimitedProviderContextCancelled(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, 0.01, 0.01, 1)

	if _, err := p.FetchForecast(context.Background(), "Paris", 16); err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := p.FetchForecast(ctx, "Paris", 16); err == nil {
		t.Fatal("expected rate limit wait to fail, got nil")
	}
	if inner.forecasts != 1 {
		t.Errorf("a failed wait must not reach the provider, got %d calls", inner.forecasts)
	}
}
