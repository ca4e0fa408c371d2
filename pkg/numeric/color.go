package numeric

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Transparent is returned by ColorForValue when there is nothing to color.
const Transparent = "transparent"

// ColorStop maps a threshold value to a CSS color.
type ColorStop struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ColorForValue picks the color of the highest stop whose value is <= v.
// Values below every stop get the lowest stop's color.
func ColorForValue(v *float64, stops []ColorStop) string {
	if v == nil || math.IsNaN(*v) || len(stops) == 0 {
		return Transparent
	}

	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })

	chosen := sorted[0]
	for _, stop := range sorted {
		if *v >= stop.Value {
			chosen = stop
		}
	}
	return chosen.Color
}

// HexToRGB parses "#rrggbb" or "#rgb".
func HexToRGB(hex string) (r, g, b int, err error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}

	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return int(n>>16) & 255, int(n>>8) & 255, int(n) & 255, nil
}

// LerpColor blends two hex colors and returns an rgb() string.
func LerpColor(start, end string, t float64) (string, error) {
	r1, g1, b1, err := HexToRGB(start)
	if err != nil {
		return "", err
	}
	r2, g2, b2, err := HexToRGB(end)
	if err != nil {
		return "", err
	}

	mix := func(a, b int) int {
		return int(math.Round(Lerp(float64(a), float64(b), t)))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", mix(r1, r2), mix(g1, g2), mix(b1, b2)), nil
}

// TimeGradient shades a time of day from night blue (midnight) to day blue (noon).
func TimeGradient(t time.Time) string {
	hour := float64(t.Hour()) + float64(t.Minute())/60
	frac := hour / 12
	if hour > 12 {
		frac = (24 - hour) / 12
	}
	// both colors are constants, the error path is unreachable
	c, _ := LerpColor("#081420", "#1e4e9c", frac)
	return c
}
