package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	lat = 50.849533
	lon = 0.537056
)

func TestIsDaylight_NoonAndMidnight(t *testing.T) {
	day := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 365; i++ {
		d := day.AddDate(0, 0, i)
		assert.True(t, IsDaylight(d.Add(12*time.Hour), lat, lon), "noon %s", d.Format(time.DateOnly))
		assert.False(t, IsDaylight(d, lat, lon), "midnight %s", d.Format(time.DateOnly))
	}
}

func TestIsDaylight_SeasonalEdges(t *testing.T) {
	// 05:00 UTC is light in June and dark in December at this latitude.
	assert.True(t, IsDaylight(time.Date(2026, time.June, 21, 5, 0, 0, 0, time.UTC), lat, lon))
	assert.False(t, IsDaylight(time.Date(2026, time.December, 21, 5, 0, 0, 0, time.UTC), lat, lon))
}

func TestIsDaylight_IgnoresZone(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skip("tzdata not available")
	}
	utc := time.Date(2026, time.July, 1, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, SolarZenith(utc, lat, lon), SolarZenith(utc.In(london), lat, lon))
}

func TestSolarZenith_Range(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 48; h++ {
		z := SolarZenith(start.Add(time.Duration(h)*time.Hour), -33.9, 151.2)
		assert.GreaterOrEqual(t, z, 0.0)
		assert.LessOrEqual(t, z, 180.0)
	}
}

func TestMoon(t *testing.T) {
	m := Moon(newMoon2000)
	assert.Equal(t, "new moon", m.Phase)
	assert.Equal(t, "🌑", m.Icon)
	assert.Equal(t, 0.0, m.Illumination)

	full := newMoon2000.Add(time.Duration(SynodicMonth/2*24*float64(time.Hour)) + time.Hour)
	m = Moon(full)
	assert.Equal(t, "full moon", m.Phase)
	assert.Equal(t, 1.0, m.Illumination)

	before := newMoon2000.Add(-24 * time.Hour)
	m = Moon(before)
	assert.Equal(t, "waning crescent", m.Phase)
}

func TestPhaseFraction_Periodic(t *testing.T) {
	at := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	month := time.Duration(SynodicMonth * 24 * float64(time.Hour))

	f := PhaseFraction(at)
	assert.GreaterOrEqual(t, f, 0.0)
	assert.Less(t, f, 1.0)
	assert.InDelta(t, f, PhaseFraction(at.Add(month)), 1e-6)
}
