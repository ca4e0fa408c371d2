package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kite-forecast/internal/models"
)

func testDashboard() *models.Dashboard {
	t0 := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	row := func(h int, daylight bool, stars int) models.ForecastRow {
		return models.ForecastRow{
			ForecastColumn: models.ForecastColumn{Time: t0.Add(time.Duration(h) * time.Hour)},
			WindSpeed:      models.Float(15),
			WindGusts:      models.Float(18),
			Compass:        "SSW",
			WaveHeight:     models.Float(0.8),
			WavePeriod:     models.Float(7),
			TideText:       "H 6.42",
			Daylight:       daylight,
			Score:          models.ScoreResult{Index: 0.7, Stars: stars},
		}
	}
	return &models.Dashboard{
		Location:     models.Location{Name: "St Leonards-on-Sea, UK"},
		Summary:      "15 kt / 18 kt · 0 mm",
		NowIndex:     1,
		Rows:         []models.ForecastRow{row(0, true, 4), row(2, true, 4), row(12, false, 0), row(14, true, 3)},
		TideCoverage: models.TideCoverage{Days: 7, Description: "Tides available for ~7 days."},
		Feeds: map[string]models.FeedStatus{
			"waves": {Source: "open-meteo-marine", Error: "status 502"},
		},
	}
}

func TestReportRows(t *testing.T) {
	d := testDashboard()

	rows := reportRows(d, reportOptions{})
	require.Len(t, rows, 3)
	assert.Equal(t, d.Rows[1].Time, rows[0].Time)

	rows = reportRows(d, reportOptions{Daylight: true})
	require.Len(t, rows, 2)
	assert.Equal(t, d.Rows[3].Time, rows[1].Time)

	rows = reportRows(d, reportOptions{Limit: 1})
	assert.Len(t, rows, 1)

	assert.Empty(t, reportRows(&models.Dashboard{NowIndex: 3}, reportOptions{}))
}

func TestPrintReport(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, testDashboard(), reportOptions{}))

	out := buf.String()
	assert.Contains(t, out, "St Leonards-on-Sea, UK  15 kt / 18 kt · 0 mm")
	assert.Contains(t, out, "Tides available for ~7 days.")
	assert.Contains(t, out, "waves unavailable: status 502")
	assert.Contains(t, out, "0.70 ★★★★")
	assert.Contains(t, out, "15→18")
	assert.Contains(t, out, "0.8m 7s")
	assert.Contains(t, out, "H 6.42")
}

func TestPrintReport_FeedsInNameOrder(t *testing.T) {
	color.NoColor = true

	d := testDashboard()
	d.Feeds["weather"] = models.FeedStatus{Source: "open-meteo", Available: true}
	d.Feeds["tides"] = models.FeedStatus{Source: "ukho", Error: "offline"}

	for i := 0; i < 10; i++ {
		var buf bytes.Buffer
		require.NoError(t, printReport(&buf, d, reportOptions{}))
		out := buf.String()

		tides, waves := strings.Index(out, "tides unavailable: offline"), strings.Index(out, "waves unavailable: status 502")
		require.NotEqual(t, -1, tides)
		require.NotEqual(t, -1, waves)
		assert.Less(t, tides, waves)
		assert.NotContains(t, out, "weather unavailable")
	}
}

func TestCellFormatting(t *testing.T) {
	assert.Equal(t, "—", wind(models.ForecastRow{}))
	assert.Equal(t, "12", wind(models.ForecastRow{WindSpeed: models.Float(12)}))
	assert.Equal(t, "—", waves(models.ForecastRow{}))
	assert.Equal(t, "1.2m", waves(models.ForecastRow{WaveHeight: models.Float(1.2)}))
	assert.Equal(t, "3.10", tideText(models.ForecastRow{Tide: &models.TideLevel{Height: 3.1}}))
	assert.Equal(t, "—", tideText(models.ForecastRow{}))
	assert.Equal(t, "—", formatValue(nil, "%.0f"))
	assert.Equal(t, "13°", formatValue(models.Float(13.2), "%.0f°"))
}
