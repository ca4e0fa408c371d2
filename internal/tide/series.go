package tide

import (
	"fmt"
	"strings"
	"time"

	"kite-forecast/internal/models"
)

const noValue = "—"

// Range returns the min and max height over events, or nil if none has a height.
func Range(events []models.TideEvent) *models.TideRange {
	var r *models.TideRange
	for _, e := range events {
		if !e.HasHeight() {
			continue
		}
		h := *e.Height
		if r == nil {
			r = &models.TideRange{Min: h, Max: h}
			continue
		}
		if h < r.Min {
			r.Min = h
		}
		if h > r.Max {
			r.Max = h
		}
	}
	return r
}

// Window returns the events with start <= time < end.
func Window(events []models.TideEvent, start, end time.Time) []models.TideEvent {
	var out []models.TideEvent
	for _, e := range events {
		if !e.Time.Before(start) && e.Time.Before(end) {
			out = append(out, e)
		}
	}
	return out
}

// Coverage counts the distinct UTC days spanned by events.
func Coverage(events []models.TideEvent) models.TideCoverage {
	days := map[string]struct{}{}
	for _, e := range events {
		if e.Time.IsZero() {
			continue
		}
		days[e.Time.UTC().Format(time.DateOnly)] = struct{}{}
	}

	if len(days) == 0 {
		return models.TideCoverage{Description: "No tide events returned."}
	}
	return models.TideCoverage{
		Days:        len(days),
		Description: fmt.Sprintf("Tides available for ~%d days.", len(days)),
	}
}

// WindowText summarises the tide inside [start, end) for a table cell:
// up to two events as "H 4.53, L 1.20", otherwise the level at start.
func WindowText(events []models.TideEvent, start, end time.Time) string {
	within := Window(events, start, end)
	if len(within) == 0 {
		level, ok := LevelAt(events, start)
		if !ok {
			return noValue
		}
		return fmt.Sprintf("%.2f", level.Height)
	}

	if len(within) > 2 {
		within = within[:2]
	}
	parts := make([]string, 0, len(within))
	for _, e := range within {
		letter := typeLetter(e.Type)
		if !e.HasHeight() {
			parts = append(parts, letter+" "+noValue)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %.2f", letter, *e.Height))
	}
	return strings.Join(parts, ", ")
}

// typeLetter abbreviates an event type; an unset type reads as a generic tide.
func typeLetter(t models.TideType) string {
	if t == "" {
		t = models.TideAny
	}
	return string(t)[:1]
}
