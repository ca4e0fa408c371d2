package astro

import (
	"math"
	"time"

	"kite-forecast/internal/models"
)

// SynodicMonth is the mean new-moon to new-moon period in days.
const SynodicMonth = 29.53058867

// newMoon2000 is a reference new moon.
var newMoon2000 = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

var phases = [8]struct{ name, icon string }{
	{"new moon", "🌑"},
	{"waxing crescent", "🌒"},
	{"first quarter", "🌓"},
	{"waxing gibbous", "🌔"},
	{"full moon", "🌕"},
	{"waning gibbous", "🌖"},
	{"last quarter", "🌗"},
	{"waning crescent", "🌘"},
}

// PhaseFraction is the position in the lunar cycle at t, in [0, 1).
func PhaseFraction(t time.Time) float64 {
	days := t.Sub(newMoon2000).Hours() / 24
	age := math.Mod(days, SynodicMonth)
	if age < 0 {
		age += SynodicMonth
	}
	return age / SynodicMonth
}

// Moon returns the phase bucket and illuminated fraction at t.
func Moon(t time.Time) models.Moon {
	f := PhaseFraction(t)
	p := phases[int(math.Floor(f*8))%8]
	return models.Moon{
		Phase:        p.name,
		Icon:         p.icon,
		Illumination: math.Round((1-math.Cos(2*math.Pi*f))/2*100) / 100,
	}
}
