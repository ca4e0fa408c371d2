package models

import (
	"fmt"
	"time"
)

// Location is the single spot the dashboard is computed for.
type Location struct {
	Name      string  `json:"name" example:"St Leonards-on-Sea, UK"`
	Latitude  float64 `json:"latitude" example:"50.849533"`
	Longitude float64 `json:"longitude" example:"0.537056"`
	Timezone  string  `json:"timezone" example:"Europe/London"`
}

func (l Location) RequestParams() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f tz: %s", l.Latitude, l.Longitude, l.Timezone)
}

// ForecastColumn is one display and scoring bucket.
type ForecastColumn struct {
	Time        time.Time `json:"time"`
	SourceIndex int       `json:"source_index"`
}

// Moon is the lunar phase at a column.
type Moon struct {
	Phase        string  `json:"phase" example:"waxing gibbous"`
	Icon         string  `json:"icon" example:"🌔"`
	Illumination float64 `json:"illumination" example:"0.83"`
}

// ForecastRow joins the raw values of one column with its score.
type ForecastRow struct {
	ForecastColumn
	Temperature              *float64    `json:"temperature"`
	WindSpeed                *float64    `json:"wind_speed"`
	WindGusts                *float64    `json:"wind_gusts"`
	GustFactor               *float64    `json:"gust_factor,omitempty"`
	WindDirection            *float64    `json:"wind_direction"`
	Compass                  string      `json:"compass" example:"SSW"`
	Precipitation            *float64    `json:"precipitation"`
	PrecipitationProbability *float64    `json:"precipitation_probability"`
	CloudCover               *float64    `json:"cloud_cover"`
	Sky                      string      `json:"sky" example:"⛅"`
	WaveHeight               *float64    `json:"wave_height"`
	WavePeriod               *float64    `json:"wave_period"`
	WaveDirection            *float64    `json:"wave_direction"`
	Tide                     *TideLevel  `json:"tide,omitempty"`
	TideText                 string      `json:"tide_text" example:"H 6.42, L 1.10"`
	TideEvents               []TideEvent `json:"tide_events,omitempty"`
	Daylight                 bool        `json:"daylight"`
	Moon                     Moon        `json:"moon"`
	Score                    ScoreResult `json:"score"`
	Colors                   RowColors   `json:"colors"`
}

// RowColors are CSS color hints for the cells of a row.
type RowColors struct {
	Time          string `json:"time" example:"rgb(30, 78, 156)"`
	Index         string `json:"index" example:"#7ed957"`
	Wind          string `json:"wind" example:"#1a7a63"`
	Gust          string `json:"gust" example:"#6b8f1a"`
	Temperature   string `json:"temperature" example:"#1f8a70"`
	Precipitation string `json:"precipitation" example:"#2c6bbf"`
	Sky           string `json:"sky" example:"#163a5a"`
	Tide          string `json:"tide" example:"#163a5a"`
}

// CacheStatus reports where a feed payload came from.
type CacheStatus string

const (
	CacheHit   CacheStatus = "HIT"
	CacheMiss  CacheStatus = "MISS"
	CacheStale CacheStatus = "STALE"
)

// FeedStatus describes the outcome of fetching one upstream feed.
type FeedStatus struct {
	Source    string      `json:"source" example:"open-meteo"`
	Available bool        `json:"available"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`
	Cache     CacheStatus `json:"cache,omitempty" example:"HIT"`
	Error     string      `json:"error,omitempty"`
}

// Dashboard is the output of one render pass.
type Dashboard struct {
	GeneratedAt  time.Time             `json:"generated_at"`
	Location     Location              `json:"location"`
	Summary      string                `json:"summary" example:"15 kt / 18 kt · 0 mm"`
	Current      CurrentWeather        `json:"current"`
	NowIndex     int                   `json:"now_index"`
	Rows         []ForecastRow         `json:"rows"`
	Tides        []TideEvent           `json:"tides"`
	TideRange    *TideRange            `json:"tide_range,omitempty"`
	TideCoverage TideCoverage          `json:"tide_coverage"`
	Feeds        map[string]FeedStatus `json:"feeds"`
}

// Now returns the row scoring "now", or nil when there are no rows.
func (d *Dashboard) Now() *ForecastRow {
	if d == nil || d.NowIndex < 0 || d.NowIndex >= len(d.Rows) {
		return nil
	}
	return &d.Rows[d.NowIndex]
}
