package score

import (
	"math"

	"kite-forecast/pkg/numeric"
)

const (
	waveMinHeight = 0.3 // m, below this the sea is flat for scoring

	waveBonus   = 0.18
	wavePenalty = 0.25

	wavePeak      = 0.8 // m
	wavePeakWidth = 0.7 // m
	waveBig       = 1.5 // m

	periodShort = 5.0 // s
	periodSpan  = 5.0 // s

	steepOnset = 0.25 // m/s
	steepSpan  = 0.25
)

// WaveDelta is the additive wave adjustment in [-0.25, +0.18].
// Missing or non-finite height or period, or a height under 0.3 m, is neutral.
func WaveDelta(height, period, waveDir, windDir *float64) float64 {
	if !finite(height) || !finite(period) || *period <= 0 || *height < waveMinHeight {
		return 0
	}
	h, per := *height, *period

	size := numeric.Clamp01(1 - math.Abs(h-wavePeak)/wavePeakWidth)
	length := 0.5 + 0.5*numeric.Clamp01((per-periodShort)/periodSpan)
	good := size * length * alignment(waveDir, windDir)

	tooBig := numeric.Clamp01((h - waveBig) / waveBig)
	choppy := numeric.Clamp01((h/per - steepOnset) / steepSpan)
	bad := math.Max(tooBig, choppy)

	return numeric.Clamp(waveBonus*good-wavePenalty*bad, -wavePenalty, waveBonus)
}

// alignment is 1 when waves run with the wind, 0 against it, 0.5 if unknown.
func alignment(waveDir, windDir *float64) float64 {
	if !finite(waveDir) || !finite(windDir) {
		return 0.5
	}
	diff := (*waveDir - *windDir) * math.Pi / 180
	return (1 + math.Cos(diff)) / 2
}
