package repositories

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"kite-forecast/config"
	"kite-forecast/internal/models"
	"kite-forecast/pkg/observe"
)

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetchOptions are shared by the hourly feeds.
type FetchOptions struct {
	Days          int
	WindSpeedUnit string
	Force         bool // bypass a fresh cache entry
}

type WeatherRepository interface {
	Name() string
	FetchWeather(ctx context.Context, loc models.Location, opts FetchOptions) (models.WeatherSeries, models.FeedStatus, error)
}

type TideRepository interface {
	Name() string
	FetchTides(ctx context.Context, force bool) ([]models.TideEvent, models.FeedStatus, error)
}

type WaveRepository interface {
	Name() string
	FetchWaves(ctx context.Context, loc models.Location, opts FetchOptions) (*models.WaveSeries, models.FeedStatus, error)
}

// Repositories is the set of upstream feeds the forecast service joins.
// Tides and Waves are nil when disabled.
type Repositories struct {
	Weather WeatherRepository
	Tides   TideRepository
	Waves   WaveRepository
}

// InitRepositories wires the configured feeds to a shared client and cache.
func InitRepositories(cfg *config.Config, l *observe.Logger, client HTTPClient, cache *PayloadCache) (Repositories, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	repos := Repositories{
		Weather: NewOpenMeteoRepository(cfg.Weather.BaseURL, cfg.Weather.TTL, l, client, cache),
	}

	if cfg.Waves.Enabled {
		repos.Waves = NewMarineRepository(cfg.Waves.BaseURL, cfg.Waves.TTL, l, client, cache)
	}

	if !cfg.TidesEnabled() {
		return repos, nil
	}

	switch cfg.Tide.Provider {
	case "ukho":
		repos.Tides = NewUKHORepository(UKHOOptions{
			BaseURL:         cfg.Tide.BaseURL,
			Station:         cfg.Tide.Station,
			APIKey:          cfg.Tide.APIKey,
			MinCoverageDays: cfg.Tide.MinCoverageDays,
			TTL:             cfg.Tide.TTL,
		}, l, client, cache)
	default:
		return repos, fmt.Errorf("unknown tide provider %q", cfg.Tide.Provider)
	}

	return repos, nil
}

func feedStatus(source string, c Cached) models.FeedStatus {
	st := models.FeedStatus{
		Source:    source,
		Available: true,
		Cache:     c.Status,
	}
	if !c.FetchedAt.IsZero() {
		at := c.FetchedAt.UTC()
		st.UpdatedAt = &at
	}
	return st
}

func failedStatus(source string, err error) models.FeedStatus {
	return models.FeedStatus{
		Source: source,
		Cache:  models.CacheMiss,
		Error:  err.Error(),
	}
}
