package forecast

import (
	"time"

	"kite-forecast/internal/models"
	"kite-forecast/pkg/numeric"
)

type stops = []numeric.ColorStop

var (
	windStops = stops{
		{Value: 0, Color: "#0a1a2b"},
		{Value: 8, Color: "#12314f"},
		{Value: 12, Color: "#1a4f86"},
		{Value: 16, Color: "#1a7a63"},
		{Value: 20, Color: "#6b8f1a"},
		{Value: 24, Color: "#c47c13"},
		{Value: 28, Color: "#c0392b"},
		{Value: 32, Color: "#7b1d6b"},
	}
	tideStops = stops{
		{Value: 0, Color: "#081420"},
		{Value: 2, Color: "#0f2538"},
		{Value: 4, Color: "#163a5a"},
		{Value: 6, Color: "#2c6bbf"},
	}
	temperatureStops = stops{
		{Value: -2, Color: "#1b2b44"},
		{Value: 4, Color: "#225c8a"},
		{Value: 10, Color: "#1f8a70"},
		{Value: 16, Color: "#f6aa1c"},
		{Value: 22, Color: "#f2545b"},
	}
	// keyed on precipitation probability
	rainStops = stops{
		{Value: 0, Color: "#2c6bbf"},
		{Value: 30, Color: "#1e4e9c"},
		{Value: 60, Color: "#12314f"},
		{Value: 80, Color: "#0a1828"},
	}
	cloudStops = stops{
		{Value: 0, Color: "#1e4e9c"},
		{Value: 30, Color: "#163a5a"},
		{Value: 60, Color: "#0f2538"},
		{Value: 80, Color: "#081420"},
	}
	indexStops = stops{
		{Value: 0, Color: "#0a1828"},
		{Value: 0.35, Color: "#1e4e9c"},
		{Value: 0.5, Color: "#2f7d32"},
		{Value: 0.65, Color: "#4caf50"},
		{Value: 0.8, Color: "#7ed957"},
	}
)

// Colors picks the cell colors of r. The time cell is shaded by local hour.
func Colors(r models.ForecastRow, zone *time.Location) models.RowColors {
	c := models.RowColors{
		Time:          numeric.TimeGradient(r.Time.In(zone)),
		Index:         numeric.ColorForValue(&r.Score.Index, indexStops),
		Wind:          numeric.ColorForValue(r.WindSpeed, windStops),
		Gust:          numeric.ColorForValue(r.WindGusts, windStops),
		Temperature:   numeric.ColorForValue(r.Temperature, temperatureStops),
		Precipitation: numeric.ColorForValue(r.PrecipitationProbability, rainStops),
		Sky:           numeric.ColorForValue(r.CloudCover, cloudStops),
		Tide:          numeric.Transparent,
	}
	if r.Tide != nil {
		c.Tide = numeric.ColorForValue(&r.Tide.Height, tideStops)
	}
	return c
}
