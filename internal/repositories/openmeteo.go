package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kite-forecast/internal/models"
	"kite-forecast/pkg/observe"
)

const (
	OpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

	weatherCacheKey = "weather"
)

var (
	openMeteoHourly  = []string{"temperature_2m", "precipitation", "precipitation_probability", "wind_speed_10m", "wind_direction_10m", "wind_gusts_10m", "cloud_cover"}
	openMeteoCurrent = []string{"temperature_2m", "precipitation", "wind_speed_10m", "wind_direction_10m", "wind_gusts_10m", "cloud_cover"}
)

type OpenMeteoRepository struct {
	baseURL    string
	ttl        time.Duration
	httpClient HTTPClient
	cache      *PayloadCache
	l          *observe.Logger
}

func NewOpenMeteoRepository(baseURL string, ttl time.Duration, l *observe.Logger, httpClient HTTPClient, cache *PayloadCache) *OpenMeteoRepository {
	if baseURL == "" {
		baseURL = OpenMeteoBaseURL
	}
	return &OpenMeteoRepository{
		baseURL:    baseURL,
		ttl:        ttl,
		httpClient: httpClient,
		cache:      cache,
		l:          l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

type OpenMeteoHourly struct {
	Time                     []string   `json:"time"`
	Temperature2m            []*float64 `json:"temperature_2m"`
	Precipitation            []*float64 `json:"precipitation"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	WindSpeed10m             []*float64 `json:"wind_speed_10m"`
	WindDirection10m         []*float64 `json:"wind_direction_10m"`
	WindGusts10m             []*float64 `json:"wind_gusts_10m"`
	CloudCover               []*float64 `json:"cloud_cover"`
}

type OpenMeteoCurrent struct {
	Time             string   `json:"time"`
	Temperature2m    *float64 `json:"temperature_2m"`
	Precipitation    *float64 `json:"precipitation"`
	WindSpeed10m     *float64 `json:"wind_speed_10m"`
	WindDirection10m *float64 `json:"wind_direction_10m"`
	WindGusts10m     *float64 `json:"wind_gusts_10m"`
	CloudCover       *float64 `json:"cloud_cover"`
}

type OpenMeteoResponse struct {
	Timezone         string            `json:"timezone"`
	UTCOffsetSeconds int               `json:"utc_offset_seconds"`
	Current          *OpenMeteoCurrent `json:"current"`
	Hourly           OpenMeteoHourly   `json:"hourly"`
}

// URL returns the upstream request for loc. Query keys are sorted, so equal
// requests produce equal URLs.
func (o *OpenMeteoRepository) URL(loc models.Location, opts FetchOptions) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	q.Set("hourly", strings.Join(openMeteoHourly, ","))
	q.Set("current", strings.Join(openMeteoCurrent, ","))
	q.Set("timezone", orDefault(loc.Timezone, "Europe/London"))
	q.Set("wind_speed_unit", orDefault(opts.WindSpeedUnit, "kn"))
	days := opts.Days
	if days <= 0 {
		days = 16
	}
	q.Set("forecast_days", strconv.Itoa(days))
	return o.baseURL + "?" + q.Encode()
}

func (o *OpenMeteoRepository) FetchWeather(ctx context.Context, loc models.Location, opts FetchOptions) (models.WeatherSeries, models.FeedStatus, error) {
	u := o.URL(loc, opts)

	o.l.Info("fetching weather", map[string]any{
		"params": loc.RequestParams(),
		"force":  opts.Force,
	})

	cached, err := o.cache.Fetch(ctx, weatherCacheKey, u, Policy{TTL: o.ttl, SameURL: true}, opts.Force,
		func(ctx context.Context) ([]byte, error) {
			return get(ctx, o.httpClient, o.l, o.Name(), u, nil)
		})
	if err != nil {
		return models.WeatherSeries{}, failedStatus(o.Name(), err), fmt.Errorf("failed to fetch weather: %w", err)
	}

	series, err := ParseOpenMeteo(cached.Payload)
	if err != nil {
		return models.WeatherSeries{}, failedStatus(o.Name(), err), err
	}

	o.l.Info("parsed weather response", map[string]any{
		"hours": series.Hourly.Len(),
		"cache": string(cached.Status),
	})

	return series, feedStatus(o.Name(), cached), nil
}

// ParseOpenMeteo converts a forecast payload into a WeatherSeries.
// Short value arrays are padded with nil to the length of hourly.time.
func ParseOpenMeteo(payload []byte) (models.WeatherSeries, error) {
	var resp OpenMeteoResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return models.WeatherSeries{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if len(resp.Hourly.Time) == 0 {
		return models.WeatherSeries{}, fmt.Errorf("no forecast data available")
	}

	zone := zoneOf(resp.Timezone, resp.UTCOffsetSeconds)
	times, err := parseTimes(resp.Hourly.Time, zone)
	if err != nil {
		return models.WeatherSeries{}, err
	}

	n := len(times)
	h := resp.Hourly
	series := models.WeatherSeries{
		Hourly: models.HourlyWeather{
			Time:                     times,
			Temperature:              fit(h.Temperature2m, n),
			WindSpeed:                fit(h.WindSpeed10m, n),
			WindGusts:                fit(h.WindGusts10m, n),
			WindDirection:            fit(h.WindDirection10m, n),
			Precipitation:            fit(h.Precipitation, n),
			PrecipitationProbability: fit(h.PrecipitationProbability, n),
			CloudCover:               fit(h.CloudCover, n),
		},
	}

	if c := resp.Current; c != nil {
		series.Current = models.CurrentWeather{
			Temperature:   c.Temperature2m,
			WindSpeed:     c.WindSpeed10m,
			WindGusts:     c.WindGusts10m,
			WindDirection: c.WindDirection10m,
			Precipitation: c.Precipitation,
			CloudCover:    c.CloudCover,
		}
		if t, err := time.ParseInLocation(openMeteoTimeLayout, c.Time, zone); err == nil {
			series.Current.Time = &t
		}
	}

	return series, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
