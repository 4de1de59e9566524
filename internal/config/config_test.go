package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("REQUEST_RATE", "")
	t.Setenv("STATE_DIR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, float64(10), cfg.RequestRate)
	assert.NotEmpty(t, cfg.StateDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://notify.example.com")
	t.Setenv("HTTP_TIMEOUT", "30s")
	t.Setenv("REQUEST_RATE", "2.5")
	t.Setenv("STATE_DIR", "/tmp/notifyhub-test")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://notify.example.com", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2.5, cfg.RequestRate)
	assert.Equal(t, "/tmp/notifyhub-test", cfg.StateDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("HTTP_TIMEOUT", "10s")
	t.Setenv("REQUEST_RATE", "fast")
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		APIBaseURL:  "http://localhost:8080",
		HTTPTimeout: 10 * time.Second,
		RequestRate: 10,
		StateDir:    "/tmp/notifyhub",
		LogLevel:    "info",
		LogFormat:   "text",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "relative url", mutate: func(c *Config) { c.APIBaseURL = "/api" }, wantErr: "API_BASE_URL"},
		{name: "zero timeout", mutate: func(c *Config) { c.HTTPTimeout = 0 }, wantErr: "HTTP_TIMEOUT"},
		{name: "zero rate", mutate: func(c *Config) { c.RequestRate = 0 }, wantErr: "REQUEST_RATE"},
		{name: "empty state dir", mutate: func(c *Config) { c.StateDir = "" }, wantErr: "STATE_DIR"},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: "LOG_LEVEL"},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "LOG_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
