package forecast

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"kite-forecast/config"
	"kite-forecast/internal/models"
	"kite-forecast/internal/repositories"
	"kite-forecast/internal/score"
	"kite-forecast/internal/tide"
	"kite-forecast/pkg/observe"
)

var (
	// ErrOffline means the weather feed failed and nothing could be rendered.
	ErrOffline = errors.New("forecast offline")
	// ErrTidesDisabled is returned by Tides when no tide provider is configured.
	ErrTidesDisabled = errors.New("tide feed disabled")
)

// Options are the render settings of a Service.
type Options struct {
	Location        models.Location
	WindowHours     int
	ForecastDays    int
	PredictDays     int
	WindSpeedUnit   string
	Strategy        tide.Strategy
	Profile         score.Profile
	RefreshInterval time.Duration
	Timeout         time.Duration
}

// OptionsFromConfig resolves named strategies and profiles from cfg.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	strategy, err := tide.ParseStrategy(cfg.Tide.Extension)
	if err != nil {
		return Options{}, err
	}
	profile, err := score.ByName(cfg.Scoring.Profile)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Location: models.Location{
			Name:      cfg.Location.Name,
			Latitude:  cfg.Location.Latitude,
			Longitude: cfg.Location.Longitude,
			Timezone:  cfg.Location.Timezone,
		},
		WindowHours:     cfg.Forecast.WindowHours,
		ForecastDays:    cfg.Forecast.Days,
		PredictDays:     cfg.Tide.PredictDays,
		WindSpeedUnit:   cfg.Forecast.WindSpeedUnit,
		Strategy:        strategy,
		Profile:         profile,
		RefreshInterval: cfg.Forecast.RefreshInterval,
		Timeout:         cfg.Forecast.Timeout,
	}, nil
}

// Service fetches the feeds, renders dashboards and keeps the latest one.
type Service struct {
	repos   repositories.Repositories
	opts    Options
	zone    *time.Location
	clock   clockwork.Clock
	metrics *observe.Metrics
	l       *observe.Logger

	mu     sync.RWMutex
	latest *models.Dashboard
}

func NewService(repos repositories.Repositories, opts Options, clock clockwork.Clock, metrics *observe.Metrics, l *observe.Logger) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	zone, err := time.LoadLocation(opts.Location.Timezone)
	if err != nil {
		l.Warning("unknown timezone, using UTC", map[string]any{
			"timezone": opts.Location.Timezone,
		})
		zone = time.UTC
	}
	return &Service{
		repos:   repos,
		opts:    opts,
		zone:    zone,
		clock:   clock,
		metrics: metrics,
		l:       l,
	}
}

// Latest returns the last rendered dashboard, or nil before the first refresh.
func (s *Service) Latest() *models.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Dashboard returns the latest dashboard while it is younger than the refresh
// interval and force is false. Otherwise it refreshes.
func (s *Service) Dashboard(ctx context.Context, force bool) (*models.Dashboard, error) {
	if d := s.Latest(); d != nil && !force && s.clock.Since(d.GeneratedAt) < s.opts.RefreshInterval {
		return d, nil
	}
	return s.Refresh(ctx, force)
}

// Refresh fetches all feeds concurrently and renders a new dashboard. Tide
// and wave failures only mark the feed unavailable; a weather failure
// returns ErrOffline and keeps the previous dashboard.
func (s *Service) Refresh(ctx context.Context, force bool) (*models.Dashboard, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	fetchOpts := repositories.FetchOptions{
		Days:          s.opts.ForecastDays,
		WindSpeedUnit: s.opts.WindSpeedUnit,
		Force:         force,
	}

	var (
		weather models.WeatherSeries
		tides   []models.TideEvent
		waves   *models.WaveSeries
		feeds   = make(map[string]models.FeedStatus, 3)
		mu      sync.Mutex
	)
	record := func(feed string, st models.FeedStatus, took time.Duration, err error) {
		s.observeFeed(feed, st, took, err)
		mu.Lock()
		feeds[feed] = st
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := s.clock.Now()
		w, st, err := s.repos.Weather.FetchWeather(gctx, s.opts.Location, fetchOpts)
		record("weather", st, s.clock.Since(start), err)
		if err != nil {
			return errors.Wrapf(ErrOffline, "weather: %v", err)
		}
		weather = w
		return nil
	})

	if s.repos.Tides != nil {
		g.Go(func() error {
			start := s.clock.Now()
			ev, st, err := s.repos.Tides.FetchTides(gctx, force)
			record("tides", st, s.clock.Since(start), err)
			if err != nil {
				s.l.Warning("tide feed unavailable", map[string]any{"feed": "tides", "error": err.Error()})
				return nil
			}
			tides = ev
			return nil
		})
	}

	if s.repos.Waves != nil {
		g.Go(func() error {
			start := s.clock.Now()
			ws, st, err := s.repos.Waves.FetchWaves(gctx, s.opts.Location, fetchOpts)
			record("waves", st, s.clock.Since(start), err)
			if err != nil {
				s.l.Warning("wave feed unavailable", map[string]any{"feed": "waves", "error": err.Error()})
				return nil
			}
			waves = ws
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.l.Error(err, map[string]any{"feed": "weather", "location": s.opts.Location.RequestParams()})
		return nil, err
	}

	start := s.clock.Now()
	d := Render(RenderPass{
		Now:          start,
		Location:     s.opts.Location,
		Zone:         s.zone,
		WindowHours:  s.opts.WindowHours,
		ForecastDays: s.opts.ForecastDays,
		PredictDays:  s.opts.PredictDays,
		Strategy:     s.opts.Strategy,
		Profile:      s.opts.Profile,
		Weather:      weather,
		Tides:        tides,
		Waves:        waves,
		Feeds:        feeds,
	})
	s.observe(&d, s.clock.Since(start))

	s.mu.Lock()
	s.latest = &d
	s.mu.Unlock()

	return &d, nil
}

// observeFeed records a fetch outcome. Failed fetches have no cache result.
func (s *Service) observeFeed(feed string, st models.FeedStatus, took time.Duration, err error) {
	s.metrics.ObserveFeed(feed, took, err)
	if err == nil {
		s.metrics.ObserveCache(feed, strings.ToLower(string(st.Cache)))
	}
}

func (s *Service) observe(d *models.Dashboard, took time.Duration) {
	predicted := 0
	for _, e := range d.Tides {
		if e.Predicted {
			predicted++
		}
	}
	var ki *float64
	if now := d.Now(); now != nil {
		ki = &now.Score.Index
	}
	s.metrics.ObserveRender(took, len(d.Rows), len(d.Tides)-predicted, predicted, ki)

	s.l.Info("rendered forecast", map[string]any{
		"columns":   len(d.Rows),
		"tides":     len(d.Tides),
		"predicted": predicted,
	})
}

// Tides returns the tide series extended PredictDays past now, with the
// status of the tide feed.
func (s *Service) Tides(ctx context.Context, force bool) ([]models.TideEvent, models.FeedStatus, error) {
	if s.repos.Tides == nil {
		return nil, models.FeedStatus{}, ErrTidesDisabled
	}

	start := s.clock.Now()
	events, st, err := s.repos.Tides.FetchTides(ctx, force)
	s.observeFeed("tides", st, s.clock.Since(start), err)
	if err != nil {
		return nil, st, errors.Wrap(err, "tides")
	}

	horizon := s.clock.Now().Add(time.Duration(s.opts.PredictDays) * day)
	return tide.Extend(events, horizon, s.opts.Strategy), st, nil
}

// Score rates a single set of conditions with the configured profile.
func (s *Service) Score(in score.Input) models.ScoreResult {
	return score.Score(in, s.opts.Profile)
}

// Run refreshes every RefreshInterval until ctx is done.
func (s *Service) Run(ctx context.Context) {
	if s.opts.RefreshInterval <= 0 {
		return
	}
	ticker := s.clock.NewTicker(s.opts.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if _, err := s.Refresh(ctx, false); err != nil {
				s.l.Warning("scheduled refresh failed", map[string]any{"error": err.Error()})
			}
		}
	}
}
