package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"kite-forecast/internal/models"
	"kite-forecast/pkg/observe"
)

const (
	MarineBaseURL = "https://marine-api.open-meteo.com/v1/marine"

	wavesCacheKey = "waves"
)

// MarineRepository fetches hourly wave height, period and direction.
type MarineRepository struct {
	baseURL    string
	ttl        time.Duration
	httpClient HTTPClient
	cache      *PayloadCache
	l          *observe.Logger
}

func NewMarineRepository(baseURL string, ttl time.Duration, l *observe.Logger, httpClient HTTPClient, cache *PayloadCache) *MarineRepository {
	if baseURL == "" {
		baseURL = MarineBaseURL
	}
	return &MarineRepository{
		baseURL:    baseURL,
		ttl:        ttl,
		httpClient: httpClient,
		cache:      cache,
		l:          l,
	}
}

func (m *MarineRepository) Name() string {
	return "open-meteo-marine"
}

type MarineResponse struct {
	Timezone         string `json:"timezone"`
	UTCOffsetSeconds int    `json:"utc_offset_seconds"`
	Hourly           struct {
		Time          []string   `json:"time"`
		WaveHeight    []*float64 `json:"wave_height"`
		WavePeriod    []*float64 `json:"wave_period"`
		WaveDirection []*float64 `json:"wave_direction"`
	} `json:"hourly"`
}

func (m *MarineRepository) URL(loc models.Location, opts FetchOptions) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	q.Set("hourly", "wave_height,wave_period,wave_direction")
	q.Set("timezone", orDefault(loc.Timezone, "Europe/London"))
	days := opts.Days
	if days <= 0 {
		days = 16
	}
	q.Set("forecast_days", strconv.Itoa(days))
	return m.baseURL + "?" + q.Encode()
}

func (m *MarineRepository) FetchWaves(ctx context.Context, loc models.Location, opts FetchOptions) (*models.WaveSeries, models.FeedStatus, error) {
	u := m.URL(loc, opts)

	cached, err := m.cache.Fetch(ctx, wavesCacheKey, u, Policy{TTL: m.ttl, SameURL: true}, opts.Force,
		func(ctx context.Context) ([]byte, error) {
			return get(ctx, m.httpClient, m.l, m.Name(), u, nil)
		})
	if err != nil {
		return nil, failedStatus(m.Name(), err), fmt.Errorf("failed to fetch waves: %w", err)
	}

	waves, err := ParseMarine(cached.Payload)
	if err != nil {
		return nil, failedStatus(m.Name(), err), err
	}
	return waves, feedStatus(m.Name(), cached), nil
}

// ParseMarine converts a marine payload into a WaveSeries.
func ParseMarine(payload []byte) (*models.WaveSeries, error) {
	var resp MarineResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if len(resp.Hourly.Time) == 0 {
		return nil, fmt.Errorf("no wave data available")
	}

	times, err := parseTimes(resp.Hourly.Time, zoneOf(resp.Timezone, resp.UTCOffsetSeconds))
	if err != nil {
		return nil, err
	}

	n := len(times)
	return &models.WaveSeries{
		Time:      times,
		Height:    fit(resp.Hourly.WaveHeight, n),
		Period:    fit(resp.Hourly.WavePeriod, n),
		Direction: fit(resp.Hourly.WaveDirection, n),
	}, nil
}
