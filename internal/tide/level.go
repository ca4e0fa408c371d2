package tide

import (
	"math"
	"sort"
	"time"

	"kite-forecast/internal/models"
	"kite-forecast/pkg/numeric"
)

// LevelAt interpolates the water level at t with a half-cosine blend
// between the bracketing events. Events must be sorted by time.
//
// Before the first event the first segment is used and the ratio clamps
// to zero, so the level is the first event's height. After the last event,
// or when a bracketing height is unknown, the level is unavailable.
func LevelAt(events []models.TideEvent, t time.Time) (models.TideLevel, bool) {
	if len(events) < 2 {
		return models.TideLevel{}, false
	}

	next := sort.Search(len(events), func(i int) bool { return !events[i].Time.Before(t) })
	if next == len(events) {
		return models.TideLevel{}, false
	}

	var prev, after models.TideEvent
	if next == 0 {
		prev, after = events[0], events[1]
	} else {
		prev, after = events[next-1], events[next]
	}
	if !prev.HasHeight() || !after.HasHeight() {
		return models.TideLevel{}, false
	}

	h := Interpolate(*prev.Height, *after.Height, prev.Time, after.Time, t)
	mid := (*prev.Height + *after.Height) / 2

	return models.TideLevel{Height: h, LowerHalf: h <= mid}, true
}

// Interpolate is the raised-cosine blend from h1 at t1 to h2 at t2.
func Interpolate(h1, h2 float64, t1, t2, t time.Time) float64 {
	var ratio float64
	if seg := t2.Sub(t1); seg != 0 {
		ratio = numeric.Clamp01(float64(t.Sub(t1)) / float64(seg))
	}
	return h1 + (h2-h1)*(1-math.Cos(math.Pi*ratio))/2
}
