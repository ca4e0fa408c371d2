package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "kite-forecast", config.App.Name)
	assert.Equal(t, "development", config.App.Env)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 120, config.Server.IdleTimeout)
	assert.Equal(t, "info", config.Log.Level)

	assert.Equal(t, "Europe/London", config.Location.Timezone)
	assert.Equal(t, 2, config.Forecast.WindowHours)
	assert.Equal(t, 16, config.Forecast.Days)
	assert.Equal(t, "kn", config.Forecast.WindSpeedUnit)
	assert.Equal(t, 2*time.Hour, config.Weather.TTL)
	assert.Equal(t, "0085", config.Tide.Station)
	assert.Equal(t, 6, config.Tide.MinCoverageDays)
	assert.Equal(t, "flat", config.Tide.Extension)
	assert.Equal(t, "wave", config.Scoring.Profile)
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	t.Setenv("APP_NAME", "test-app")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TIDE_STATION", "0001")
	t.Setenv("TIDE_EXTENSION", "trend")
	t.Setenv("WEATHER_TTL", "45m")
	t.Setenv("FORECAST_WINDOW_HOURS", "3")
	t.Setenv("LOCATION_LATITUDE", "51.5")
	t.Setenv("SCORING_PROFILE", "classic")
	t.Setenv("UKHO_KEY", "secret")
	t.Setenv("SENTRY_DSN", "https://key@sentry.example/1")

	config, err := NewConfigWithProvider(NewFileConfigProvider("nonexistent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "test-app", config.App.Name)
	assert.Equal(t, "production", config.App.Env)
	assert.True(t, config.IsProduction())
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "0001", config.Tide.Station)
	assert.Equal(t, "trend", config.Tide.Extension)
	assert.Equal(t, 45*time.Minute, config.Weather.TTL)
	assert.Equal(t, 3, config.Forecast.WindowHours)
	assert.Equal(t, 51.5, config.Location.Latitude)
	assert.Equal(t, "classic", config.Scoring.Profile)
	assert.Equal(t, "secret", config.Tide.APIKey)
	assert.Equal(t, "https://key@sentry.example/1", config.Sentry.DSN)
}

func TestConfigFileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  name: from-file
forecast:
  days: 7
weather:
  ttl: 90m
tide:
  station: "0100"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("TIDE_STATION", "0200")

	config, err := NewConfigWithProvider(NewFileConfigProvider(path))
	require.NoError(t, err)

	assert.Equal(t, "from-file", config.App.Name)
	assert.Equal(t, 7, config.Forecast.Days)
	assert.Equal(t, 90*time.Minute, config.Weather.TTL)
	assert.Equal(t, "0200", config.Tide.Station, "environment wins over the file")
	assert.Equal(t, "8080", config.Server.Port, "defaults survive a partial file")
}

func TestConfigFileLoading(t *testing.T) {
	config, err := NewConfigWithProvider(NewFileConfigProvider("config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "kite-forecast", config.App.Name)
	assert.Equal(t, "St Leonards-on-Sea, UK", config.Location.Name)
	assert.Equal(t, 30*time.Minute, config.Forecast.RefreshInterval)
	assert.Equal(t, "https://marine-api.open-meteo.com/v1/marine", config.Waves.BaseURL)
}

func TestFileConfigProvider_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0o600))

	_, err := NewConfigWithProvider(NewFileConfigProvider(path))
	assert.Error(t, err)
}

func TestFileConfigProvider_LoadFromFile(t *testing.T) {
	provider := NewFileConfigProvider("nonexistent.yaml")
	config := &Config{}

	err := provider.loadFromFile(config)
	assert.NoError(t, err)
}

func TestConfigValidation(t *testing.T) {
	valid := Default()
	assert.NoError(t, valid.Validate())

	cases := map[string]func(c *Config){
		"app.name is required":            func(c *Config) { c.App.Name = "" },
		"forecast.window_hours":           func(c *Config) { c.Forecast.WindowHours = 0 },
		"forecast.days":                   func(c *Config) { c.Forecast.Days = 30 },
		"location.latitude":               func(c *Config) { c.Location.Latitude = 95 },
		`tide.provider "noaa"`:            func(c *Config) { c.Tide.Provider = "noaa" },
		`tide.extension "harmonic"`:       func(c *Config) { c.Tide.Extension = "harmonic" },
		`scoring.profile "freestyle"`:     func(c *Config) { c.Scoring.Profile = "freestyle" },
		"waves.base_url is required when": func(c *Config) { c.Waves.BaseURL = "" },
		`log.format "xml"`:                func(c *Config) { c.Log.Format = "xml" },
	}
	for want, mutate := range cases {
		t.Run(want, func(t *testing.T) {
			c := Default()
			mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), want)
		})
	}
}

func TestNewConfigWithProvider(t *testing.T) {
	mockProvider := &MockConfigProvider{config: Default()}
	mockProvider.config.App.Name = "test-app"

	config, err := NewConfigWithProvider(mockProvider)
	require.NoError(t, err)
	assert.Equal(t, "test-app", config.App.Name)

	mockProvider.err = os.ErrPermission
	_, err = NewConfigWithProvider(mockProvider)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestConfigHelperMethods(t *testing.T) {
	config := Default()
	assert.True(t, config.IsDevelopment())
	assert.False(t, config.IsProduction())
	assert.True(t, config.TidesEnabled())

	config.Tide.Provider = "none"
	assert.False(t, config.TidesEnabled())
}

// MockConfigProvider for testing
type MockConfigProvider struct {
	config *Config
	err    error
}

func (m *MockConfigProvider) Load() (*Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.config, nil
}

func (m *MockConfigProvider) Validate(config *Config) error {
	return nil
}
