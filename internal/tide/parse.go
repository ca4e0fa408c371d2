// Package tide reconstructs a continuous water-level curve from sparse
// high and low water events and extends it past the observed horizon.
package tide

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"kite-forecast/internal/models"
)

// ErrNoEvents is returned when a payload has no recognizable event array.
var ErrNoEvents = errors.New("no tide event array in payload")

// Accepted field names, in lookup order.
var (
	containerKeys = []string{"items", "data", "events", "TidalEvents"}
	timeKeys      = []string{"EventDateTime", "EventDateTimeUtc", "DateTime", "dateTime", "date", "time", "Time"}
	typeKeys      = []string{"EventType", "eventType", "Type", "type"}
	heightKeys    = []string{"Height", "height", "HeightInMeters", "heightInMeters", "Value"}
	predictedKeys = []string{"IsPredicted", "predicted"}
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var leadingFloat = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)

// ParseResult is the outcome of parsing one upstream payload.
type ParseResult struct {
	Events  []models.TideEvent
	Dropped int // entries without a usable timestamp, or duplicates
}

// Parse normalizes a tide payload into time-ordered events.
// Entries with a missing or unparsable timestamp are dropped, not fatal.
func Parse(payload []byte) (ParseResult, error) {
	items, err := eventArray(payload)
	if err != nil {
		return ParseResult{}, err
	}

	res := ParseResult{Events: make([]models.TideEvent, 0, len(items))}
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			res.Dropped++
			continue
		}

		ts, ok := parseTime(lookupString(fields, timeKeys))
		if !ok {
			res.Dropped++
			continue
		}

		res.Events = append(res.Events, models.TideEvent{
			Type:      NormalizeType(lookupString(fields, typeKeys)),
			Height:    parseHeight(lookup(fields, heightKeys)),
			Time:      ts,
			Predicted: parseBool(lookup(fields, predictedKeys)),
		})
	}

	sorted, dups := sortUnique(res.Events)
	res.Events = sorted
	res.Dropped += dups

	return res, nil
}

// NormalizeType maps a free-form event type onto HIGH, LOW or TIDE.
func NormalizeType(raw string) models.TideType {
	v := strings.ToLower(raw)
	switch {
	case strings.Contains(v, "high"):
		return models.TideHigh
	case strings.Contains(v, "low"):
		return models.TideLow
	default:
		return models.TideAny
	}
}

func eventArray(payload []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, ErrNoEvents
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to parse tide array: %w", err)
		}
		return items, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse tide payload: %w", err)
	}
	for _, k := range containerKeys {
		raw, ok := wrapper[k]
		if !ok {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
	}
	return nil, ErrNoEvents
}

func lookup(fields map[string]json.RawMessage, keys []string) json.RawMessage {
	for _, k := range keys {
		if v, ok := fields[k]; ok && string(v) != "null" {
			return v
		}
	}
	return nil
}

func lookupString(fields map[string]json.RawMessage, keys []string) string {
	raw := lookup(fields, keys)
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return strings.Trim(string(raw), `"`)
	}
	return s
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		// zone-less layouts are read as UTC
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseHeight(raw json.RawMessage) *float64 {
	if raw == nil {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseBool(raw json.RawMessage) bool {
	var b bool
	if raw == nil || json.Unmarshal(raw, &b) != nil {
		return false
	}
	return b
}

// sortUnique orders events by time and drops repeated timestamps, keeping the first.
func sortUnique(events []models.TideEvent) ([]models.TideEvent, int) {
	sort.SliceStable(events, func(i, j int) bool { return events[i].Time.Before(events[j].Time) })

	out := events[:0]
	dropped := 0
	for i, e := range events {
		if i > 0 && e.Time.Equal(out[len(out)-1].Time) {
			dropped++
			continue
		}
		out = append(out, e)
	}
	return out, dropped
}
