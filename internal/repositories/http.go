package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kite-forecast/pkg/observe"
)

// OpenMeteoErrorResponse is the error body Open-Meteo returns with a 400.
type OpenMeteoErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// get performs a GET and returns the body of a 200 response.
func get(ctx context.Context, client HTTPClient, l *observe.Logger, source, url string, header http.Header) ([]byte, error) {
	l.Info("making upstream request", map[string]any{
		"repository": source,
		"url":        url,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	l.Info("received upstream response", map[string]any{
		"repository": source,
		"status":     resp.StatusCode,
		"bytes":      len(body),
	})

	if resp.StatusCode != http.StatusOK {
		var apiErr OpenMeteoErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error {
			return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Reason)
		}
		return nil, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}
	return body, nil
}

const openMeteoTimeLayout = "2006-01-02T15:04"

// zoneOf resolves the zone an Open-Meteo response reports its local times in.
func zoneOf(name string, offsetSeconds int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone(name, offsetSeconds)
}

func parseTimes(raw []string, loc *time.Location) ([]time.Time, error) {
	out := make([]time.Time, len(raw))
	for i, s := range raw {
		t, err := time.ParseInLocation(openMeteoTimeLayout, s, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse time %q: %w", s, err)
		}
		out[i] = t
	}
	return out, nil
}

// fit returns s resized to n, padding with nil.
func fit(s []*float64, n int) []*float64 {
	out := make([]*float64, n)
	copy(out, s)
	return out
}
