package models

import "time"

// HourlyWeather holds the parallel hourly arrays of one forecast fetch.
// Every slice has the same length as Time; nil entries are missing values.
type HourlyWeather struct {
	Time                     []time.Time `json:"time"`
	Temperature              []*float64  `json:"temperature_2m"`
	WindSpeed                []*float64  `json:"wind_speed_10m"`
	WindGusts                []*float64  `json:"wind_gusts_10m"`
	WindDirection            []*float64  `json:"wind_direction_10m"`
	Precipitation            []*float64  `json:"precipitation"`
	PrecipitationProbability []*float64  `json:"precipitation_probability"`
	CloudCover               []*float64  `json:"cloud_cover"`
	WaveHeight               []*float64  `json:"wave_height"`
	WavePeriod               []*float64  `json:"wave_period"`
	WaveDirection            []*float64  `json:"wave_direction"`
}

// Len is the number of hourly samples.
func (h HourlyWeather) Len() int {
	return len(h.Time)
}

// CurrentWeather is the scalar "now" block of a forecast.
type CurrentWeather struct {
	Time          *time.Time `json:"time,omitempty"`
	Temperature   *float64   `json:"temperature_2m" example:"13.2"`
	WindSpeed     *float64   `json:"wind_speed_10m" example:"15"`
	WindGusts     *float64   `json:"wind_gusts_10m" example:"18"`
	WindDirection *float64   `json:"wind_direction_10m" example:"200"`
	Precipitation *float64   `json:"precipitation" example:"0"`
	CloudCover    *float64   `json:"cloud_cover" example:"40"`
}

// WeatherSeries is a parsed forecast fetch.
type WeatherSeries struct {
	Current CurrentWeather
	Hourly  HourlyWeather
}

// WaveSeries is a parsed marine forecast fetch.
type WaveSeries struct {
	Time      []time.Time
	Height    []*float64
	Period    []*float64
	Direction []*float64
}

// At returns a pointer to the i-th value of s, or nil when out of range.
func At(s []*float64, i int) *float64 {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// MergeWaves copies wave values into h by exact timestamp match.
// Hours without a matching wave sample are left nil.
func (h *HourlyWeather) MergeWaves(w *WaveSeries) {
	n := h.Len()
	h.WaveHeight = make([]*float64, n)
	h.WavePeriod = make([]*float64, n)
	h.WaveDirection = make([]*float64, n)
	if w == nil {
		return
	}

	byTime := make(map[int64]int, len(w.Time))
	for i, t := range w.Time {
		byTime[t.Unix()] = i
	}
	for i, t := range h.Time {
		j, ok := byTime[t.Unix()]
		if !ok {
			continue
		}
		h.WaveHeight[i] = At(w.Height, j)
		h.WavePeriod[i] = At(w.Period, j)
		h.WaveDirection[i] = At(w.Direction, j)
	}
}
