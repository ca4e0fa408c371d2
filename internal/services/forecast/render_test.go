package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kite-forecast/internal/models"
	"kite-forecast/internal/score"
	"kite-forecast/internal/tide"
)

var t0 = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return models.Float(v) }

func hours(n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = t0.Add(time.Duration(i) * time.Hour)
	}
	return out
}

func repeat(n int, v float64) []*float64 {
	out := make([]*float64, n)
	for i := range out {
		out[i] = f(v)
	}
	return out
}

func weather(n int) models.WeatherSeries {
	return models.WeatherSeries{
		Current: models.CurrentWeather{WindSpeed: f(15), WindGusts: f(18), Precipitation: f(0)},
		Hourly: models.HourlyWeather{
			Time:          hours(n),
			Temperature:   repeat(n, 13),
			WindSpeed:     repeat(n, 15),
			WindGusts:     repeat(n, 18),
			WindDirection: repeat(n, 180),
			Precipitation: repeat(n, 0),
			CloudCover:    repeat(n, 30),
		},
	}
}

// tides returns n alternating events, HIGH first, starting 12 hours before t0.
func tides(n int) []models.TideEvent {
	out := make([]models.TideEvent, n)
	for i := range out {
		e := models.TideEvent{Time: t0.Add(-12*time.Hour + time.Duration(i)*tide.DefaultStep)}
		if i%2 == 0 {
			e.Type, e.Height = models.TideHigh, f(4.3)
		} else {
			e.Type, e.Height = models.TideLow, f(0.8)
		}
		out[i] = e
	}
	return out
}

func TestColumns(t *testing.T) {
	now := t0.Add(3*time.Hour + 30*time.Minute)
	cols := Columns(hours(48), now, 2, now.Add(day))

	require.Len(t, cols, 12)
	assert.Equal(t, 4, cols[0].SourceIndex)
	assert.Equal(t, t0.Add(4*time.Hour), cols[0].Time)
	assert.Equal(t, 26, cols[len(cols)-1].SourceIndex)
	for i := 1; i < len(cols); i++ {
		assert.Equal(t, 2, cols[i].SourceIndex-cols[i-1].SourceIndex)
	}
}

func TestColumns_NowPastSeriesStartsAtZero(t *testing.T) {
	cols := Columns(hours(6), t0.Add(30*time.Hour), 2, t0.Add(60*time.Hour))
	require.Len(t, cols, 3)
	assert.Equal(t, 0, cols[0].SourceIndex)
}

func TestColumns_Empty(t *testing.T) {
	assert.Empty(t, Columns(nil, t0, 2, t0.Add(day)))
}

func TestTideHorizon(t *testing.T) {
	cols := []models.ForecastColumn{{Time: t0}, {Time: t0.Add(10 * time.Hour)}}

	assert.Equal(t, t0.Add(12*time.Hour), TideHorizon(cols, t0, 2, 16, 0))
	assert.Equal(t, t0.Add(16*day), TideHorizon(cols, t0, 2, 16, 16))
	assert.Equal(t, t0.Add(3*day), TideHorizon(nil, t0, 2, 3, 1), "no columns falls back to the forecast end")
}

func TestCompass(t *testing.T) {
	cases := []struct {
		deg  *float64
		want string
	}{
		{f(0), "N"},
		{f(22.5), "NNE"},
		{f(180), "S"},
		{f(200), "SSW"},
		{f(337.5), "NNW"},
		{f(350), "N"},
		{f(359), "N"},
		{f(-90), "W"},
		{f(450), "E"},
		{nil, "—"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Compass(c.deg))
	}
}

func TestSkyIcon(t *testing.T) {
	noon := t0.Add(12 * time.Hour)
	late := t0.Add(23 * time.Hour)

	assert.Equal(t, "☀️", SkyIcon(f(10), noon))
	assert.Equal(t, "🌕", SkyIcon(f(10), late))
	assert.Equal(t, "⛅", SkyIcon(f(30), noon))
	assert.Equal(t, "☁️🌙", SkyIcon(f(60), late))
	assert.Equal(t, "🌥️", SkyIcon(f(79), noon))
	assert.Equal(t, "☁️", SkyIcon(f(80), noon))
	assert.Equal(t, "—", SkyIcon(nil, noon))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "15 kt / 19 kt · 0 mm", Summary(models.CurrentWeather{WindSpeed: f(15.4), WindGusts: f(18.6)}))
	assert.Equal(t, "0 kt / 0 kt · 2 mm", Summary(models.CurrentWeather{Precipitation: f(1.5)}))
}

func TestRender(t *testing.T) {
	now := t0.Add(time.Hour)
	feeds := map[string]models.FeedStatus{"weather": {Source: "open-meteo", Available: true}}

	d := Render(RenderPass{
		Now:          now,
		Location:     models.Location{Latitude: 50.849533, Longitude: 0.537056},
		Zone:         time.UTC,
		WindowHours:  2,
		ForecastDays: 2,
		PredictDays:  3,
		Strategy:     tide.StrategyFlat,
		Profile:      score.Classic(),
		Weather:      weather(72),
		Tides:        tides(8),
		Feeds:        feeds,
	})

	require.Len(t, d.Rows, 25)
	assert.Equal(t, 0, d.NowIndex)
	assert.Equal(t, now, d.GeneratedAt)
	assert.Equal(t, "15 kt / 18 kt · 0 mm", d.Summary)
	assert.Equal(t, feeds, d.Feeds)

	last := d.Tides[len(d.Tides)-1]
	assert.True(t, last.Predicted)
	assert.False(t, last.Time.Before(now.Add(3*day)), "tides reach the predict-days floor")

	require.NotNil(t, d.TideRange)
	assert.Equal(t, 0.8, d.TideRange.Min)
	assert.Equal(t, 4.3, d.TideRange.Max)
	assert.Equal(t, "Tides available for ~3 days.", d.TideCoverage.Description)

	for _, r := range d.Rows {
		require.NotNil(t, r.Tide, "tide level at %s", r.Time)
		assert.GreaterOrEqual(t, r.Tide.Height, 0.8-1e-9)
		assert.LessOrEqual(t, r.Tide.Height, 4.3+1e-9)
		assert.Equal(t, "S", r.Compass)
		assert.NotEmpty(t, r.Score.Explanation)
		require.NotNil(t, r.GustFactor)
		assert.InDelta(t, 1.2, *r.GustFactor, 1e-9)
	}

	// 13:00 UTC is daylight on the south coast in October, 01:00 is not
	noon := d.Rows[6]
	assert.Equal(t, t0.Add(13*time.Hour), noon.Time)
	assert.True(t, noon.Daylight)
	assert.Positive(t, noon.Score.Index)

	night := d.Rows[0]
	assert.False(t, night.Daylight)
	assert.Equal(t, "🌙", night.Sky)
	assert.Less(t, night.Score.Index, noon.Score.Index)
}

func TestRender_WithoutTides(t *testing.T) {
	d := Render(RenderPass{
		Now:          t0,
		WindowHours:  2,
		ForecastDays: 1,
		Profile:      score.Wave(),
		Weather:      weather(24),
	})

	require.NotEmpty(t, d.Rows)
	assert.Nil(t, d.TideRange)
	assert.Empty(t, d.Tides)
	assert.Equal(t, 0, d.TideCoverage.Days)
	for _, r := range d.Rows {
		assert.Nil(t, r.Tide)
		assert.Equal(t, "—", r.TideText)
		assert.Equal(t, 0.5, r.Score.Subscores.Tide)
		assert.Zero(t, r.Score.Subscores.WaveDelta)
	}
}

func TestRender_MergesWavesWithoutMutatingInput(t *testing.T) {
	w := weather(24)
	waves := &models.WaveSeries{
		Time:      hours(24),
		Height:    repeat(24, 0.8),
		Period:    repeat(24, 8),
		Direction: repeat(24, 180),
	}

	d := Render(RenderPass{
		Now:          t0,
		WindowHours:  3,
		ForecastDays: 1,
		Profile:      score.Wave(),
		Weather:      w,
		Waves:        waves,
	})

	require.NotEmpty(t, d.Rows)
	require.NotNil(t, d.Rows[0].WaveHeight)
	assert.Equal(t, 0.8, *d.Rows[0].WaveHeight)
	assert.Nil(t, w.Hourly.WaveHeight)

	noon := d.Rows[4]
	assert.Equal(t, t0.Add(12*time.Hour), noon.Time)
	assert.Positive(t, noon.Score.Subscores.WaveDelta)
}

func TestRender_EmptyWeather(t *testing.T) {
	d := Render(RenderPass{Now: t0, WindowHours: 2, ForecastDays: 1, Profile: score.Wave()})
	assert.Empty(t, d.Rows)
	assert.Nil(t, d.Now())
}

func TestColors(t *testing.T) {
	r := models.ForecastRow{
		ForecastColumn: models.ForecastColumn{Time: t0.Add(12 * time.Hour)},
		WindSpeed:      f(17),
		WindGusts:      f(21),
		Temperature:    f(-5),
		CloudCover:     f(85),
		Tide:           &models.TideLevel{Height: 4.2},
		Score:          models.ScoreResult{Index: 0.82},
	}

	c := Colors(r, time.UTC)
	assert.Equal(t, "rgb(30, 78, 156)", c.Time)
	assert.Equal(t, "#7ed957", c.Index)
	assert.Equal(t, "#1a7a63", c.Wind)
	assert.Equal(t, "#6b8f1a", c.Gust)
	assert.Equal(t, "#1b2b44", c.Temperature, "below the lowest stop")
	assert.Equal(t, "#081420", c.Sky)
	assert.Equal(t, "#163a5a", c.Tide)
	assert.Equal(t, "transparent", c.Precipitation)

	assert.Equal(t, "rgb(8, 20, 32)", Colors(models.ForecastRow{ForecastColumn: models.ForecastColumn{Time: t0}}, time.UTC).Time)
	assert.Equal(t, "transparent", Colors(models.ForecastRow{}, time.UTC).Tide)
}
