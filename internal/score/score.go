// Package score computes the Kiteability Index of a single forecast column.
package score

import (
	"fmt"
	"math"

	"kite-forecast/internal/models"
	"kite-forecast/pkg/numeric"
)

// Input is everything known about one column. Nil means missing.
type Input struct {
	WindSpeed     *float64 // kt
	GustSpeed     *float64 // kt
	WindDirection *float64 // degrees the wind blows from
	Tide          *models.TideLevel
	TideRange     *models.TideRange
	WaveHeight    *float64 // m
	WavePeriod    *float64 // s
	WaveDirection *float64 // degrees
	Daylight      bool
}

// Exponents of the weighted geometric mean.
const (
	weightWind      = 0.35
	weightGust      = 0.30
	weightDirection = 0.20
	weightTide      = 0.10
	weightDaylight  = 0.05
)

const (
	gustSteady = 1.3
	gustWild   = 1.6

	tideUnknown = 0.5
)

// Score rates one column under profile p.
func Score(in Input, p Profile) models.ScoreResult {
	wind := value(in.WindSpeed, 0)
	gf := GustFactor(in.WindSpeed, in.GustSpeed)

	sub := models.Subscores{
		Wind:      evaluate(p.Wind, wind),
		Gust:      gustScore(gf, p.GustFloor),
		Direction: evaluate(p.Direction, normalizeDegrees(in.WindDirection)),
		Tide:      tideScore(in.Tide, in.TideRange, p),
		Daylight:  1,
	}
	if !in.Daylight {
		sub.Daylight = p.Night
	}
	if p.Waves {
		sub.WaveDelta = WaveDelta(in.WaveHeight, in.WavePeriod, in.WaveDirection, in.WindDirection)
	}

	ki := Composite(sub)

	return models.ScoreResult{
		Index:       ki,
		Stars:       Stars(ki),
		Subscores:   sub,
		GustFactor:  gf,
		Explanation: explain(in, wind, gf, sub, p),
	}
}

// Composite is the weighted geometric mean of the subscores plus the wave
// delta, clamped to [0, 1]. A zero factor zeroes the index whatever the waves.
func Composite(s models.Subscores) float64 {
	ki := math.Pow(s.Wind, weightWind) *
		math.Pow(s.Gust, weightGust) *
		math.Pow(s.Direction, weightDirection) *
		math.Pow(s.Tide, weightTide) *
		math.Pow(s.Daylight, weightDaylight)
	if ki == 0 {
		return 0
	}
	return numeric.Clamp01(ki + s.WaveDelta)
}

// Stars buckets an index into a 0-5 rating. There is no one-star tier.
func Stars(ki float64) int {
	switch {
	case ki >= 0.8:
		return 5
	case ki >= 0.65:
		return 4
	case ki >= 0.5:
		return 3
	case ki >= 0.35:
		return 2
	default:
		return 0
	}
}

// GustFactor is gust/wind, or nil when either is missing, non-finite or
// the wind is zero.
func GustFactor(wind, gust *float64) *float64 {
	if !finite(wind) || !finite(gust) || *wind == 0 {
		return nil
	}
	return models.Float(*gust / *wind)
}

func gustScore(gf *float64, floor float64) float64 {
	if gf == nil {
		return floor
	}
	var s float64
	switch {
	case *gf <= gustSteady:
		s = 1
	case *gf >= gustWild:
		s = 0
	default:
		s = 1 - (*gf-gustSteady)/(gustWild-gustSteady)
	}
	return math.Max(floor, s)
}

func tideScore(level *models.TideLevel, r *models.TideRange, p Profile) float64 {
	if level == nil || r == nil || !finite(&level.Height) || !finite(&r.Min) || !finite(&r.Max) || r.Span() <= 0 {
		return tideUnknown
	}
	norm := numeric.Clamp01((level.Height - r.Min) / r.Span())
	s := numeric.Clamp01(1 - math.Abs(norm-p.TideTarget)/p.TideHalfWidth)
	return math.Max(p.TideFloor, s)
}

// normalizeDegrees maps a bearing into [0, 360); missing becomes NaN so
// that only a catch-all rule matches.
func normalizeDegrees(deg *float64) float64 {
	if deg == nil || math.IsNaN(*deg) || math.IsInf(*deg, 0) {
		return math.NaN()
	}
	d := math.Mod(*deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func value(v *float64, fallback float64) float64 {
	if !finite(v) {
		return fallback
	}
	return *v
}

// finite reports whether v is present and neither NaN nor infinite.
func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func explain(in Input, wind float64, gf *float64, s models.Subscores, p Profile) []string {
	lines := []string{
		fmt.Sprintf("Wind %d kt → S_w %.2f", int(math.Round(wind)), s.Wind),
	}

	if gf != nil {
		lines = append(lines, fmt.Sprintf("Gust factor %.2f → S_g %.2f", *gf, s.Gust))
	} else {
		lines = append(lines, fmt.Sprintf("Gust factor n/a → S_g %.2f", s.Gust))
	}

	if finite(in.WindDirection) {
		lines = append(lines, fmt.Sprintf("Direction %d° → S_d %.2f", int(math.Round(normalizeDegrees(in.WindDirection))), s.Direction))
	} else {
		lines = append(lines, fmt.Sprintf("Direction n/a → S_d %.2f", s.Direction))
	}

	lines = append(lines,
		fmt.Sprintf("Tide → S_t %.2f", s.Tide),
		fmt.Sprintf("Daylight → S_l %.1f", s.Daylight),
	)

	switch {
	case !p.Waves:
		lines = append(lines, "Waves not scored")
	case !finite(in.WaveHeight) || !finite(in.WavePeriod):
		lines = append(lines, "Waves n/a → 0.00")
	default:
		lines = append(lines, fmt.Sprintf("Waves %.1f m @ %.0f s → %+.2f", *in.WaveHeight, *in.WavePeriod, s.WaveDelta))
	}

	return lines
}
