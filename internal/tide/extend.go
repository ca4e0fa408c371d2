package tide

import (
	"fmt"
	"math"
	"sort"
	"time"

	"kite-forecast/internal/models"
	"kite-forecast/pkg/numeric"
)

// Strategy selects how predicted event heights are derived.
type Strategy string

const (
	// StrategyFlat repeats the last known HIGH and LOW heights.
	StrategyFlat Strategy = "flat"
	// StrategyTrend follows a per-type least-squares line over recent events.
	StrategyTrend Strategy = "trend"
)

// ParseStrategy validates a configured strategy name. Empty means flat.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyFlat:
		return StrategyFlat, nil
	case StrategyTrend:
		return StrategyTrend, nil
	default:
		return "", fmt.Errorf("unknown tide extension strategy %q", s)
	}
}

const (
	// MinEventsToExtend is the least history Extend will extrapolate from.
	MinEventsToExtend = 6
	// DefaultStep is one lunar semi-diurnal half cycle, ~6h12m36s.
	DefaultStep = time.Duration(6.21 * float64(time.Hour))

	minStep      = 2 * time.Hour
	maxStep      = 10 * time.Hour
	recentEvents = 24
)

// Extend returns a sorted copy of events continued with predicted events
// until the last one reaches horizon. It is a no-op with fewer than
// MinEventsToExtend events or when horizon is already covered.
func Extend(events []models.TideEvent, horizon time.Time, strategy Strategy) []models.TideEvent {
	base := make([]models.TideEvent, 0, len(events))
	for _, e := range events {
		if !e.Time.IsZero() {
			base = append(base, e)
		}
	}
	sort.SliceStable(base, func(i, j int) bool { return base[i].Time.Before(base[j].Time) })

	if len(base) < MinEventsToExtend || horizon.IsZero() {
		return base
	}
	last := base[len(base)-1]
	if !last.Time.Before(horizon) {
		return base
	}

	step := Step(base)
	predict := predictor(base, strategy)

	nextType := last.Type
	nextTime := last.Time
	for nextTime.Before(horizon) {
		nextType = alternate(nextType)
		nextTime = nextTime.Add(step)

		var height *float64
		if h, ok := predict(nextType, nextTime); ok && !math.IsNaN(h) && !math.IsInf(h, 0) {
			height = models.Float(numeric.Round2(math.Max(h, 0)))
		}

		base = append(base, models.TideEvent{
			Type:      nextType,
			Height:    height,
			Time:      nextTime,
			Predicted: true,
		})
	}

	return base
}

// Step estimates the interval between consecutive events as the median of
// deltas that fall within a plausible tidal half cycle.
func Step(events []models.TideEvent) time.Duration {
	var deltas []float64
	for i := 1; i < len(events); i++ {
		dt := events[i].Time.Sub(events[i-1].Time)
		if dt > minStep && dt < maxStep {
			deltas = append(deltas, float64(dt))
		}
	}
	if m, ok := numeric.Median(deltas); ok {
		return time.Duration(m)
	}
	return DefaultStep
}

func alternate(t models.TideType) models.TideType {
	if t == models.TideHigh {
		return models.TideLow
	}
	return models.TideHigh
}

type predictFunc func(models.TideType, time.Time) (float64, bool)

func predictor(base []models.TideEvent, strategy Strategy) predictFunc {
	recent := base
	if len(recent) > recentEvents {
		recent = recent[len(recent)-recentEvents:]
	}

	// x is hours since the first recent event
	t0 := recent[0].Time
	hours := func(t time.Time) float64 { return t.Sub(t0).Hours() }

	points := map[models.TideType][]numeric.Point{}
	medians := map[models.TideType]*float64{}
	for _, typ := range []models.TideType{models.TideHigh, models.TideLow} {
		var ys []float64
		for _, e := range recent {
			if e.Type != typ || !e.HasHeight() {
				continue
			}
			points[typ] = append(points[typ], numeric.Point{X: hours(e.Time), Y: *e.Height})
			ys = append(ys, *e.Height)
		}
		if m, ok := numeric.Median(ys); ok {
			medians[typ] = models.Float(m)
		}
	}

	fallback := func(typ models.TideType) (float64, bool) {
		if m := medians[typ]; m != nil {
			return *m, true
		}
		return 0, false
	}

	if strategy == StrategyTrend {
		fits := map[models.TideType]numeric.Fit{}
		for typ, pts := range points {
			if fit, ok := numeric.LinearFit(pts); ok {
				fits[typ] = fit
			}
		}
		return func(typ models.TideType, t time.Time) (float64, bool) {
			if fit, ok := fits[typ]; ok {
				return fit.At(hours(t)), true
			}
			return fallback(typ)
		}
	}

	lastKnown := map[models.TideType]float64{}
	for _, e := range base {
		if e.HasHeight() && (e.Type == models.TideHigh || e.Type == models.TideLow) {
			lastKnown[e.Type] = *e.Height
		}
	}
	return func(typ models.TideType, _ time.Time) (float64, bool) {
		if h, ok := lastKnown[typ]; ok {
			return h, true
		}
		return fallback(typ)
	}
}
