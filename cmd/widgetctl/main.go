// Command widgetctl sets the city on a running weather widget server and
// prints the result once the widget has loaded it
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"weather-widget/widget"
)

var errNotReady = errors.New("widget did not finish loading")

type client struct {
	baseURL string
	http    *http.Client
	poll    time.Duration
}

func newClient(baseURL string) *client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		poll:    500 * time.Millisecond,
	}
}

func (c *client) do(ctx context.Context, method, path string, body any) (widget.View, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return widget.View{}, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return widget.View{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if lang := os.Getenv("LANG"); lang != "" {
		req.Header.Set("Accept-Language", strings.ReplaceAll(strings.Split(lang, ".")[0], "_", "-"))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return widget.View{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusUnprocessableEntity:
	default:
		return widget.View{}, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	var v widget.View
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return widget.View{}, fmt.Errorf("decode view: %w", err)
	}
	return v, nil
}

// lookup sets the city and polls the view until it is ready. The widget
// reports fetch failures only in the server log, so a city that never
// loads ends in errNotReady when ctx expires.
func (c *client) lookup(ctx context.Context, city string) (widget.View, error) {
	v, err := c.do(ctx, http.MethodPost, "/api/query", map[string]string{"city": city})
	if err != nil {
		return v, err
	}
	if strings.TrimSpace(city) == "" {
		return c.do(ctx, http.MethodPost, "/api/fetch", nil)
	}

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()
	for v.Status != widget.StatusReady {
		select {
		case <-ctx.Done():
			return v, errNotReady
		case <-ticker.C:
		}
		if v, err = c.do(ctx, http.MethodGet, "/api/view", nil); err != nil {
			return v, err
		}
	}
	return v, nil
}

func printView(out io.Writer, v widget.View) error {
	title := cases.Title(language.English)

	fmt.Fprintln(out, v.Message)
	if v.Prompt != "" {
		fmt.Fprintln(out, v.Prompt)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Date:\t%s\n", v.Date)
	fmt.Fprintf(tw, "Time:\t%s\n", v.Time)
	fmt.Fprintf(tw, "Conditions:\t%s %s\n", title.String(v.Description), v.ConditionIcon)
	fmt.Fprintf(tw, "Temperature:\t%s °C %s\n", v.Celsius, v.TemperatureIcon)
	if len(v.Forecast) > 0 {
		fmt.Fprintln(tw, "\nFuture Weather\t")
		for _, row := range v.Forecast {
			fmt.Fprintf(tw, "%s\t%s °C\t%s %s\n", row.Date, row.Celsius, title.String(row.Description), row.Icon)
		}
	}
	return tw.Flush()
}

func main() {
	server := flag.String("server", "http://localhost:8080", "Widget server base URL")
	city := flag.String("city", "", "City to look up")
	timeout := flag.Duration("timeout", 15*time.Second, "How long to wait for the widget to load")
	flag.Parse()

	if *city == "" && flag.NArg() > 0 {
		*city = strings.Join(flag.Args(), " ")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	v, err := newClient(*server).lookup(ctx, *city)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := printView(os.Stdout, v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
