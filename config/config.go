package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	App      AppConfig      `yaml:"app" envconfig:"APP"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Log      LogConfig      `yaml:"log" envconfig:"LOG"`
	Sentry   SentryConfig   `yaml:"sentry" envconfig:"SENTRY"`
	Location LocationConfig `yaml:"location" envconfig:"LOCATION"`
	Forecast ForecastConfig `yaml:"forecast" envconfig:"FORECAST"`
	Weather  WeatherConfig  `yaml:"weather" envconfig:"WEATHER"`
	Waves    WavesConfig    `yaml:"waves" envconfig:"WAVES"`
	Tide     TideConfig     `yaml:"tide" envconfig:"TIDE"`
	Scoring  ScoringConfig  `yaml:"scoring" envconfig:"SCORING"`
	Cache    CacheConfig    `yaml:"cache" envconfig:"CACHE"`
}

type AppConfig struct {
	Name    string `yaml:"name" split_words:"true"`
	Version string `yaml:"version" split_words:"true"`
	Env     string `yaml:"env" split_words:"true"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port" split_words:"true"`
	ReadTimeout  int    `yaml:"read_timeout" split_words:"true"`
	WriteTimeout int    `yaml:"write_timeout" split_words:"true"`
	IdleTimeout  int    `yaml:"idle_timeout" split_words:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" split_words:"true"`
	Debug bool   `yaml:"debug" split_words:"true"`
}

type LocationConfig struct {
	Name      string  `yaml:"name" split_words:"true"`
	Latitude  float64 `yaml:"latitude" split_words:"true"`
	Longitude float64 `yaml:"longitude" split_words:"true"`
	Timezone  string  `yaml:"timezone" split_words:"true"`
}

type ForecastConfig struct {
	WindowHours     int           `yaml:"window_hours" split_words:"true"`
	Days            int           `yaml:"days" split_words:"true"`
	WindSpeedUnit   string        `yaml:"wind_speed_unit" split_words:"true"`
	RefreshInterval time.Duration `yaml:"refresh_interval" split_words:"true"`
	Timeout         time.Duration `yaml:"timeout" split_words:"true"`
}

type WeatherConfig struct {
	BaseURL string        `yaml:"base_url" split_words:"true"`
	TTL     time.Duration `yaml:"ttl" split_words:"true"`
}

type WavesConfig struct {
	Enabled bool          `yaml:"enabled" split_words:"true"`
	BaseURL string        `yaml:"base_url" split_words:"true"`
	TTL     time.Duration `yaml:"ttl" split_words:"true"`
}

type TideConfig struct {
	Provider        string        `yaml:"provider" split_words:"true"`
	Station         string        `yaml:"station" split_words:"true"`
	BaseURL         string        `yaml:"base_url" split_words:"true"`
	APIKey          string        `yaml:"api_key" split_words:"true"`
	PredictDays     int           `yaml:"predict_days" split_words:"true"`
	Extension       string        `yaml:"extension" split_words:"true"`
	MinCoverageDays int           `yaml:"min_coverage_days" split_words:"true"`
	TTL             time.Duration `yaml:"ttl" split_words:"true"`
}

type ScoringConfig struct {
	Profile string `yaml:"profile" split_words:"true"`
}

type CacheConfig struct {
	Path string `yaml:"path" split_words:"true"`
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads a YAML file, then applies environment overrides.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

// NewConfig loads DefaultPath, or the file named by CONFIG_PATH.
func NewConfig() (*Config, error) {
	path := DefaultPath
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}
	return NewConfigWithProvider(NewFileConfigProvider(path))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cfg, err := provider.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := provider.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cfg := Default()

	if err := p.loadFromFile(cfg); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	// the upstream portal documents the key under this name
	if key := os.Getenv("UKHO_KEY"); key != "" {
		cfg.Tide.APIKey = key
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg. A missing file is not an error.
func (p *FileConfigProvider) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

func (p *FileConfigProvider) Validate(cfg *Config) error {
	return cfg.Validate()
}

// Default returns the built-in configuration. File and environment values
// are applied on top of it.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "kite-forecast",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Location: LocationConfig{
			Name:      "St Leonards-on-Sea, UK",
			Latitude:  50.849533,
			Longitude: 0.537056,
			Timezone:  "Europe/London",
		},
		Forecast: ForecastConfig{
			WindowHours:     2,
			Days:            16,
			WindSpeedUnit:   "kn",
			RefreshInterval: 30 * time.Minute,
			Timeout:         20 * time.Second,
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.open-meteo.com/v1/forecast",
			TTL:     2 * time.Hour,
		},
		Waves: WavesConfig{
			Enabled: true,
			BaseURL: "https://marine-api.open-meteo.com/v1/marine",
			TTL:     2 * time.Hour,
		},
		Tide: TideConfig{
			Provider:        "ukho",
			Station:         "0085",
			BaseURL:         "https://admiraltyapi.azure-api.net/uktidalapi/api/V1",
			PredictDays:     16,
			Extension:       "flat",
			MinCoverageDays: 6,
		},
		Scoring: ScoringConfig{
			Profile: "wave",
		},
		Cache: CacheConfig{
			Path: "kite-cache.db",
		},
	}
}

func (c *Config) Validate() error {
	var errs []string
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, msg)
		}
	}

	check(c.App.Name != "", "app.name is required")
	check(c.Server.Port != "", "server.port is required")
	check(c.Server.ReadTimeout >= 0 && c.Server.WriteTimeout >= 0 && c.Server.IdleTimeout >= 0,
		"server timeouts must not be negative")
	check(c.Location.Latitude >= -90 && c.Location.Latitude <= 90, "location.latitude must be within [-90, 90]")
	check(c.Location.Longitude >= -180 && c.Location.Longitude <= 180, "location.longitude must be within [-180, 180]")
	check(c.Forecast.WindowHours > 0, "forecast.window_hours must be positive")
	check(c.Forecast.Days > 0 && c.Forecast.Days <= 16, "forecast.days must be within [1, 16]")
	check(c.Tide.PredictDays >= 0, "tide.predict_days must not be negative")
	check(c.Weather.BaseURL != "", "weather.base_url is required")
	check(!c.Waves.Enabled || c.Waves.BaseURL != "", "waves.base_url is required when waves are enabled")

	switch c.Tide.Provider {
	case "ukho", "none":
	default:
		errs = append(errs, fmt.Sprintf("tide.provider %q is not supported", c.Tide.Provider))
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("log.format %q is not supported", c.Log.Format))
	}
	switch c.Tide.Extension {
	case "", "flat", "trend":
	default:
		errs = append(errs, fmt.Sprintf("tide.extension %q is not supported", c.Tide.Extension))
	}
	switch c.Scoring.Profile {
	case "", "classic", "wave":
	default:
		errs = append(errs, fmt.Sprintf("scoring.profile %q is not supported", c.Scoring.Profile))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production" || c.App.Env == "prod"
}

// TidesEnabled reports whether a tide feed is configured at all.
func (c *Config) TidesEnabled() bool {
	return c.Tide.Provider != "none"
}
