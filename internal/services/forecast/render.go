// Package forecast buckets hourly forecasts into display columns, joins wind,
// tide, wave and daylight inputs per column and scores each one.
package forecast

import (
	"fmt"
	"math"
	"time"

	"kite-forecast/internal/astro"
	"kite-forecast/internal/models"
	"kite-forecast/internal/score"
	"kite-forecast/internal/tide"
)

const day = 24 * time.Hour

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// RenderPass carries everything one render needs. Render reads nothing else.
type RenderPass struct {
	Now          time.Time
	Location     models.Location
	Zone         *time.Location
	WindowHours  int
	ForecastDays int
	PredictDays  int
	Strategy     tide.Strategy
	Profile      score.Profile

	Weather models.WeatherSeries
	Tides   []models.TideEvent
	Waves   *models.WaveSeries
	Feeds   map[string]models.FeedStatus
}

// Columns picks one hourly index per window, starting at the first time not
// before now (or index 0) and stopping once a time passes end.
func Columns(times []time.Time, now time.Time, windowHours int, end time.Time) []models.ForecastColumn {
	if windowHours <= 0 {
		windowHours = 1
	}

	start := 0
	for i, t := range times {
		if !t.Before(now) {
			start = i
			break
		}
	}

	var cols []models.ForecastColumn
	for i := start; i < len(times); i += windowHours {
		if times[i].After(end) {
			break
		}
		cols = append(cols, models.ForecastColumn{Time: times[i], SourceIndex: i})
	}
	return cols
}

// TideHorizon is how far the tide series must reach: one window past the last
// column, and never less than predictDays from now.
func TideHorizon(cols []models.ForecastColumn, now time.Time, windowHours, forecastDays, predictDays int) time.Time {
	window := time.Duration(windowHours) * time.Hour
	end := now.Add(time.Duration(forecastDays) * day)
	if len(cols) > 0 {
		end = cols[len(cols)-1].Time.Add(window)
	}
	if floor := now.Add(time.Duration(predictDays) * day); floor.After(end) {
		return floor
	}
	return end
}

// Render runs one pass over p and returns the joined, scored dashboard.
func Render(p RenderPass) models.Dashboard {
	zone := p.Zone
	if zone == nil {
		zone = time.UTC
	}

	hourly := p.Weather.Hourly
	hourly.MergeWaves(p.Waves)

	window := time.Duration(p.WindowHours) * time.Hour
	cols := Columns(hourly.Time, p.Now, p.WindowHours, p.Now.Add(time.Duration(p.ForecastDays)*day))

	horizon := TideHorizon(cols, p.Now, p.WindowHours, p.ForecastDays, p.PredictDays)
	tides := tide.Extend(p.Tides, horizon, p.Strategy)
	tideRange := tide.Range(tides)

	rows := make([]models.ForecastRow, 0, len(cols))
	nowIndex := -1
	for i, col := range cols {
		if nowIndex < 0 && !col.Time.Before(p.Now) {
			nowIndex = i
		}
		rows = append(rows, row(p, hourly, col, window, tides, tideRange, zone))
	}
	if nowIndex < 0 {
		nowIndex = 0
	}

	return models.Dashboard{
		GeneratedAt:  p.Now,
		Location:     p.Location,
		Summary:      Summary(p.Weather.Current),
		Current:      p.Weather.Current,
		NowIndex:     nowIndex,
		Rows:         rows,
		Tides:        tides,
		TideRange:    tideRange,
		TideCoverage: tide.Coverage(p.Tides),
		Feeds:        p.Feeds,
	}
}

func row(
	p RenderPass,
	h models.HourlyWeather,
	col models.ForecastColumn,
	window time.Duration,
	tides []models.TideEvent,
	tideRange *models.TideRange,
	zone *time.Location,
) models.ForecastRow {
	i := col.SourceIndex
	r := models.ForecastRow{
		ForecastColumn:           col,
		Temperature:              models.At(h.Temperature, i),
		WindSpeed:                models.At(h.WindSpeed, i),
		WindGusts:                models.At(h.WindGusts, i),
		WindDirection:            models.At(h.WindDirection, i),
		Precipitation:            models.At(h.Precipitation, i),
		PrecipitationProbability: models.At(h.PrecipitationProbability, i),
		CloudCover:               models.At(h.CloudCover, i),
		WaveHeight:               models.At(h.WaveHeight, i),
		WavePeriod:               models.At(h.WavePeriod, i),
		WaveDirection:            models.At(h.WaveDirection, i),
		TideText:                 tide.WindowText(tides, col.Time, col.Time.Add(window)),
		TideEvents:               tide.Window(tides, col.Time, col.Time.Add(window)),
		Daylight:                 astro.IsDaylight(col.Time, p.Location.Latitude, p.Location.Longitude),
		Moon:                     astro.Moon(col.Time),
	}
	r.Compass = Compass(r.WindDirection)
	r.Sky = SkyIcon(r.CloudCover, col.Time.In(zone))

	if level, ok := tide.LevelAt(tides, col.Time); ok {
		r.Tide = &level
	}

	r.Score = score.Score(score.Input{
		WindSpeed:     r.WindSpeed,
		GustSpeed:     r.WindGusts,
		WindDirection: r.WindDirection,
		Tide:          r.Tide,
		TideRange:     tideRange,
		WaveHeight:    r.WaveHeight,
		WavePeriod:    r.WavePeriod,
		WaveDirection: r.WaveDirection,
		Daylight:      r.Daylight,
	}, p.Profile)
	r.GustFactor = r.Score.GustFactor
	r.Colors = Colors(r, zone)

	return r
}

// Compass names the 16-point compass sector of a bearing.
func Compass(deg *float64) string {
	if deg == nil || math.IsNaN(*deg) {
		return "—"
	}
	d := math.Mod(*deg, 360)
	if d < 0 {
		d += 360
	}
	return compassPoints[int(math.Round(d/22.5))%16]
}

// SkyIcon picks a cloud-cover icon. Night is before 06:00 or from 20:00 in
// the zone of t.
func SkyIcon(cloud *float64, t time.Time) string {
	if cloud == nil || math.IsNaN(*cloud) {
		return "—"
	}
	night := t.Hour() < 6 || t.Hour() >= 20
	pick := func(dayIcon, nightIcon string) string {
		if night {
			return nightIcon
		}
		return dayIcon
	}

	switch c := *cloud; {
	case c < 20:
		return pick("☀️", "🌕")
	case c < 50:
		return pick("⛅", "🌙")
	case c < 80:
		return pick("🌥️", "☁️🌙")
	default:
		return "☁️"
	}
}

// Summary is the one-line current conditions text.
func Summary(c models.CurrentWeather) string {
	return fmt.Sprintf("%d kt / %d kt · %d mm", rounded(c.WindSpeed), rounded(c.WindGusts), rounded(c.Precipitation))
}

func rounded(v *float64) int {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return int(math.Round(*v))
}
