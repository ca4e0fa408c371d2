package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"kite-forecast/internal/models"
	"kite-forecast/internal/tide"
	"kite-forecast/pkg/observe"
)

const UKHOBaseURL = "https://admiraltyapi.azure-api.net/uktidalapi/api/V1"

// ErrMissingAPIKey is returned when no Admiralty subscription key is configured.
var ErrMissingAPIKey = errors.New("missing UKHO API key")

type UKHOOptions struct {
	BaseURL         string
	Station         string
	APIKey          string
	MinCoverageDays int
	// TTL bounds the age of a cached payload. Zero means coverage alone decides.
	TTL time.Duration
}

// UKHORepository fetches tidal events for one station from the UK Hydrographic
// Office Admiralty API.
type UKHORepository struct {
	opts       UKHOOptions
	httpClient HTTPClient
	cache      *PayloadCache
	l          *observe.Logger
}

func NewUKHORepository(opts UKHOOptions, l *observe.Logger, httpClient HTTPClient, cache *PayloadCache) *UKHORepository {
	if opts.BaseURL == "" {
		opts.BaseURL = UKHOBaseURL
	}
	return &UKHORepository{
		opts:       opts,
		httpClient: httpClient,
		cache:      cache,
		l:          l,
	}
}

func (u *UKHORepository) Name() string {
	return "ukho"
}

func (u *UKHORepository) URL() string {
	return fmt.Sprintf("%s/Stations/%s/TidalEvents", u.opts.BaseURL, url.PathEscape(u.opts.Station))
}

func (u *UKHORepository) cacheKey() string {
	return "tides:" + u.opts.Station
}

// covers reports whether a stored payload spans enough distinct days to be
// served without asking upstream again.
func (u *UKHORepository) covers(payload []byte) bool {
	res, err := tide.Parse(payload)
	if err != nil {
		return false
	}
	return tide.Coverage(res.Events).Days >= u.opts.MinCoverageDays
}

func (u *UKHORepository) FetchTides(ctx context.Context, force bool) ([]models.TideEvent, models.FeedStatus, error) {
	target := u.URL()

	fetch := func(ctx context.Context) ([]byte, error) {
		if u.opts.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		header := http.Header{}
		header.Set("Ocp-Apim-Subscription-Key", u.opts.APIKey)
		return get(ctx, u.httpClient, u.l, u.Name(), target, header)
	}

	policy := Policy{TTL: u.opts.TTL, Accept: u.covers}
	cached, err := u.cache.Fetch(ctx, u.cacheKey(), target, policy, force, fetch)
	if err != nil {
		return nil, failedStatus(u.Name(), err), fmt.Errorf("failed to fetch tides: %w", err)
	}

	res, err := tide.Parse(cached.Payload)
	if err != nil {
		return nil, failedStatus(u.Name(), err), fmt.Errorf("failed to parse tides: %w", err)
	}

	if res.Dropped > 0 {
		u.l.Warning("dropped malformed tide entries", map[string]any{
			"station": u.opts.Station,
			"dropped": res.Dropped,
		})
	}
	u.l.Info("parsed tide response", map[string]any{
		"station": u.opts.Station,
		"events":  len(res.Events),
		"cache":   string(cached.Status),
	})

	return res.Events, feedStatus(u.Name(), cached), nil
}
