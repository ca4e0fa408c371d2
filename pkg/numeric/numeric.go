package numeric

import (
	"math"
	"sort"
)

// Point is a single (x, y) sample for regression.
type Point struct {
	X float64
	Y float64
}

// Fit is the result of an ordinary least-squares line fit.
type Fit struct {
	Slope     float64
	Intercept float64
}

// At evaluates the fitted line at x.
func (f Fit) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// Median returns the median of the finite values, or false when there are none.
func Median(values []float64) (float64, bool) {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if isFinite(v) {
			nums = append(nums, v)
		}
	}
	if len(nums) == 0 {
		return 0, false
	}
	sort.Float64s(nums)

	mid := len(nums) / 2
	if len(nums)%2 == 0 {
		return (nums[mid-1] + nums[mid]) / 2, true
	}
	return nums[mid], true
}

// LinearFit fits y = slope*x + intercept over the finite points.
// It reports false with fewer than two points or when every x is identical.
func LinearFit(points []Point) (Fit, bool) {
	var n, sx, sy, sxx, sxy float64
	for _, p := range points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			continue
		}
		n++
		sx += p.X
		sy += p.Y
		sxx += p.X * p.X
		sxy += p.X * p.Y
	}
	if n < 2 {
		return Fit{}, false
	}

	denom := n*sxx - sx*sx
	if denom == 0 {
		return Fit{}, false
	}

	slope := (n*sxy - sx*sy) / denom
	return Fit{
		Slope:     slope,
		Intercept: (sy - slope*sx) / n,
	}, true
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates linearly between a and b; t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
