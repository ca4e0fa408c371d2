// Package astro has low-precision sun and moon helpers, good to a few
// minutes, which is plenty for bucketing forecast columns.
package astro

import (
	"math"
	"time"
)

// DaylightZenith is the zenith angle of sunrise and sunset, allowing for
// refraction and the solar disc.
const DaylightZenith = 90.833

// SolarZenith returns the sun's zenith angle in degrees at t for the given
// position, using the NOAA truncated Fourier series for declination and
// the equation of time.
func SolarZenith(t time.Time, lat, lon float64) float64 {
	u := t.UTC()
	hour := float64(u.Hour()) + float64(u.Minute())/60 + float64(u.Second())/3600

	gamma := 2 * math.Pi / 365 * (float64(u.YearDay()-1) + (hour-12)/24)

	decl := 0.006918 -
		0.399912*math.Cos(gamma) +
		0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) +
		0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) +
		0.00148*math.Sin(3*gamma)

	eqTime := 229.18 * (0.000075 +
		0.001868*math.Cos(gamma) -
		0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) -
		0.040849*math.Sin(2*gamma))

	// minutes
	trueSolar := math.Mod(hour*60+eqTime+4*lon, 1440)
	if trueSolar < 0 {
		trueSolar += 1440
	}
	hourAngle := trueSolar/4 - 180

	latRad := radians(lat)
	cosZenith := math.Cos(latRad)*math.Cos(decl)*math.Cos(radians(hourAngle)) +
		math.Sin(latRad)*math.Sin(decl)

	return degrees(math.Acos(math.Max(-1, math.Min(1, cosZenith))))
}

// IsDaylight reports whether the sun is above the horizon at t.
func IsDaylight(t time.Time, lat, lon float64) bool {
	return SolarZenith(t, lat, lon) < DaylightZenith
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
