package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kite-forecast/config"
	"kite-forecast/pkg/observe"
)

func TestSentryEnv(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "dev", sentryEnv(cfg))

	cfg.App.Env = "production"
	assert.Equal(t, "prod", sentryEnv(cfg))

	cfg.App.Env = "staging"
	assert.Equal(t, "staging", sentryEnv(cfg))
}

func TestLoggerOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Format = observe.FormatConsole
	cfg.Log.Level = "warn"

	opts := loggerOptions(cfg, false)
	assert.Equal(t, observe.FormatConsole, opts.Format)
	assert.Equal(t, "warn", opts.Level)
	assert.Equal(t, "development", opts.Env)

	assert.Equal(t, observe.FormatJSON, loggerOptions(cfg, true).Format)
}
