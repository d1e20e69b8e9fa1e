package widget

import (
	"errors"
	"fmt"

	"weather-widget/datasource"
)

// PromptEmptyCity is shown when a fetch is triggered without a city
const PromptEmptyCity = "Please enter a city name."

// Stage identifies which request of a fetch cycle failed
type Stage string

const (
	StageCurrent  Stage = "current"
	StageForecast Stage = "forecast"
)

// ValidationError blocks a fetch before any request is made
type ValidationError struct {
	Prompt string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Prompt
}

// FetchError reports a failed provider request. StatusCode is zero when
// the request never produced a response.
type FetchError struct {
	Stage      Stage
	City       string
	Cycle      string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s weather for %q: status %d: %v", e.Stage, e.City, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s weather for %q: %v", e.Stage, e.City, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PartialDataError means current weather was stored but the forecast failed
type PartialDataError struct {
	Err *FetchError
}

func (e *PartialDataError) Error() string {
	return "partial data: " + e.Err.Error()
}

func (e *PartialDataError) Unwrap() error {
	return e.Err
}

func newFetchError(stage Stage, city, cycle string, err error) *FetchError {
	fe := &FetchError{Stage: stage, City: city, Cycle: cycle, Err: err}
	var statusErr *datasource.StatusError
	if errors.As(err, &statusErr) {
		fe.StatusCode = statusErr.StatusCode
	}
	return fe
}
