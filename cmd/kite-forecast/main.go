package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"kite-forecast/config"
	"kite-forecast/internal/repositories"
	"kite-forecast/internal/services/forecast"
	"kite-forecast/pkg/observe"
)

// @title Kite Forecast API
// @version 1.0.0
// @description Kitesurfing conditions for a single spot: weather, tides and waves fused into a Kiteability Index per time window.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Forecast
// @tag.description Scored kiteability forecast
// @tag.name Tides
// @tag.description High and low water events
// @tag.name Score
// @tag.description Ad-hoc Kiteability Index
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var configPath string

var rootCmd = &cobra.Command{
	Use:           "kite-forecast",
	Short:         "Kiteability forecast for a single spot.",
	Long:          `kite-forecast joins weather, tide and wave forecasts into scored time windows and serves them over HTTP.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default config/config.yaml or $CONFIG_PATH)")
	rootCmd.AddCommand(serveCmd, reportCmd)
}

// deps is everything a command needs to produce dashboards.
type deps struct {
	cfg      *config.Config
	l        *observe.Logger
	registry *prometheus.Registry
	cache    *repositories.PayloadCache
	service  *forecast.Service
	sentry   *observe.SentryHook
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.NewConfigWithProvider(config.NewFileConfigProvider(configPath))
	}
	return config.NewConfig()
}

// setup wires config, logging, metrics, the payload cache, the feed
// repositories and the forecast service.
func setup(ctx context.Context) (*deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	rt := &deps{cfg: cfg}

	if cfg.Sentry.DSN != "" {
		hook, err := observe.NewSentryHook(sentryEnv(cfg), cfg.App.Name, 0, cfg.Sentry.Debug, cfg.Sentry.DSN)
		if err != nil {
			fmt.Fprintln(os.Stderr, "sentry disabled:", err)
		} else if hook.Enabled() {
			rt.sentry = hook
		}
	}
	rt.l = newLogger(cfg, rt.sentry)

	rt.registry = prometheus.NewRegistry()
	rt.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observe.NewMetrics(rt.registry)

	clock := clockwork.NewRealClock()
	rt.cache, err = repositories.OpenPayloadCache(ctx, cfg.Cache.Path, clock, rt.l)
	if err != nil {
		return nil, err
	}

	repos, err := repositories.InitRepositories(cfg, rt.l, nil, rt.cache)
	if err != nil {
		_ = rt.cache.Close()
		return nil, err
	}

	opts, err := forecast.OptionsFromConfig(cfg)
	if err != nil {
		_ = rt.cache.Close()
		return nil, err
	}

	rt.service = forecast.NewService(repos, opts, clock, metrics, rt.l)
	return rt, nil
}

// sentryEnv maps the app environment onto the names the hook reports for.
func sentryEnv(cfg *config.Config) string {
	switch {
	case cfg.IsProduction():
		return "prod"
	case cfg.IsDevelopment():
		return "dev"
	}
	return cfg.App.Env
}

func newLogger(cfg *config.Config, hook *observe.SentryHook) *observe.Logger {
	opts := loggerOptions(cfg, hook != nil)
	if hook == nil {
		return observe.NewZapLogger(cfg.App.Name, opts, os.Stdout)
	}
	l := observe.NewZapLogger(cfg.App.Name, opts, os.Stdout, hook)
	hook.SetLogger(l)
	return l
}

func loggerOptions(cfg *config.Config, sentry bool) observe.LoggerOptions {
	opts := observe.LoggerOptions{Env: cfg.App.Env, Level: cfg.Log.Level, Format: cfg.Log.Format}
	if sentry {
		// the hook decodes JSON entries
		opts.Format = observe.FormatJSON
	}
	return opts
}

func (rt *deps) close() {
	if err := rt.cache.Close(); err != nil {
		rt.l.Error(err, map[string]any{"component": "cache"})
	}
	if rt.sentry != nil {
		rt.sentry.Flush()
	}
	_ = rt.l.Stop()
}
