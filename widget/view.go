package widget

import (
	"fmt"
	"strings"
	"time"
)

// Status of the widget as shown in its heading
const (
	StatusIdle    = "idle"
	StatusLoading = "loading"
	StatusReady   = "ready"
)

const (
	messageIdle    = "Enter a city to get the time and weather information"
	messageLoading = "Loading..."
)

// View is a render-ready snapshot of the widget
type View struct {
	Query      string `json:"query"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Prompt     string `json:"prompt,omitempty"`
	Background string `json:"background"`

	Location string `json:"location,omitempty"`
	Display

	Description     string `json:"description,omitempty"`
	ConditionIcon   Symbol `json:"conditionIcon,omitempty"`
	Celsius         string `json:"celsius,omitempty"`
	TemperatureIcon Symbol `json:"temperatureIcon,omitempty"`

	Forecast []ForecastRow `json:"forecast,omitempty"`
}

// ForecastRow is one day of the forecast list
type ForecastRow struct {
	Time        time.Time `json:"time"`
	Date        string    `json:"date"`
	Celsius     string    `json:"celsius"`
	Description string    `json:"description"`
	Icon        Symbol    `json:"icon"`
}

// DefaultDateLayout formats forecast dates until a viewer locale is applied
const DefaultDateLayout = "2006-01-02"

// View renders the current state for a viewer in time.Local
func (w *Widget) View() View {
	return w.ViewIn(time.Local)
}

// ViewIn renders the current state for a viewer in loc. The zone is used
// for the clock when no offset is known and for forecast dates.
func (w *Widget) ViewIn(loc *time.Location) View {
	if loc == nil {
		loc = time.Local
	}
	now := w.clock.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{
		Query:      w.query,
		Prompt:     w.prompt,
		Background: w.background,
		Display:    LocalTime(now, w.offset, loc),
	}

	switch {
	case w.current != nil:
		v.Status = StatusReady
		v.Message = "Current Date and Time In " + w.current.Location
	case !isBlank(w.query):
		v.Status = StatusLoading
		v.Message = messageLoading
	default:
		v.Status = StatusIdle
		v.Message = messageIdle
	}

	if w.current != nil {
		celsius := w.current.Celsius()
		v.Location = w.current.Location
		v.Description = w.current.Description
		v.ConditionIcon = IconFor(w.current.Condition)
		v.Celsius = FormatCelsius(celsius)
		v.TemperatureIcon = TemperatureIcon(celsius)
	}

	if w.forecast != nil {
		v.Forecast = make([]ForecastRow, 0, len(w.forecast.Days))
		for _, day := range w.forecast.Days {
			v.Forecast = append(v.Forecast, ForecastRow{
				Time:        day.Time,
				Date:        day.Time.In(loc).Format(DefaultDateLayout),
				Celsius:     FormatCelsius(day.Celsius()),
				Description: day.Description,
				Icon:        IconFor(day.Condition),
			})
		}
	}

	return v
}

// WithDateLayout returns a copy of v with forecast dates formatted in
// loc using layout
func (v View) WithDateLayout(layout string, loc *time.Location) View {
	if len(v.Forecast) == 0 {
		return v
	}
	rows := make([]ForecastRow, len(v.Forecast))
	for i, row := range v.Forecast {
		row.Date = row.Time.In(loc).Format(layout)
		rows[i] = row
	}
	v.Forecast = rows
	return v
}

// FormatCelsius renders a temperature with two decimals
func FormatCelsius(celsius float64) string {
	return fmt.Sprintf("%.2f", celsius)
}

// String renders the view as plain text
func (v View) String() string {
	var b strings.Builder
	fmt.Fprintln(&b, v.Message)
	if v.Prompt != "" {
		fmt.Fprintln(&b, v.Prompt)
	}
	fmt.Fprintf(&b, "Date: %s\nTime: %s\n", v.Date, v.Time)
	if v.Location == "" {
		return b.String()
	}
	fmt.Fprintf(&b, "%s\n%s %s\nTemperature: %s °C %s\n",
		v.Location, v.Description, v.ConditionIcon, v.Celsius, v.TemperatureIcon)
	for _, row := range v.Forecast {
		fmt.Fprintf(&b, "%s  %s °C  %s %s\n", row.Date, row.Celsius, row.Description, row.Icon)
	}
	return b.String()
}
