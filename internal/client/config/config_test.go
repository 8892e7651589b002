package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	want := Config{
		APIBaseURL:           "http://localhost:8000",
		SessionDriver:        DriverSQLite,
		SessionDSN:           "stocksense.db",
		SessionTTL:           24 * time.Hour,
		SessionPurgeInterval: 10 * time.Minute,
		WebAddr:              ":3000",
		AuthRateLimit:        10,
		LogLevel:             "info",
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoad_DefaultsWhenNothingSet(t *testing.T) {
	cfg, err := load(nil, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	cfg, err := load(nil, envMap(map[string]string{
		"STOCKSENSE_API_URL":         "https://auth.example.com",
		"STOCKSENSE_SESSION_TTL":     "2h",
		"STOCKSENSE_SESSION_DRIVER":  "postgres",
		"STOCKSENSE_SESSION_DSN":     "postgres://u:p@db/stocksense",
		"STOCKSENSE_COOKIE_SECURE":   "true",
		"STOCKSENSE_TRUST_PROXY":     "1",
		"STOCKSENSE_AUTH_RATE_LIMIT": "3",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://auth.example.com", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, DriverPostgres, cfg.SessionDriver)
	assert.Equal(t, "postgres://u:p@db/stocksense", cfg.SessionDSN)
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, 3, cfg.AuthRateLimit)
}

func TestLoad_EmptyEnvKeepsDefault(t *testing.T) {
	cfg, err := load(nil, envMap(map[string]string{"STOCKSENSE_API_URL": ""}))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
}

func TestLoad_BadEnvValuesReportedTogether(t *testing.T) {
	_, err := load(nil, envMap(map[string]string{
		"STOCKSENSE_SESSION_TTL":     "forever",
		"STOCKSENSE_AUTH_RATE_LIMIT": "many",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STOCKSENSE_SESSION_TTL")
	assert.Contains(t, err.Error(), "STOCKSENSE_AUTH_RATE_LIMIT")
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	cfg, err := load(
		[]string{"-a", "http://flag:9000", "-l", ":8080", "-x", "ignored"},
		envMap(map[string]string{"STOCKSENSE_API_URL": "http://env:8000"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "http://flag:9000", cfg.APIBaseURL)
	assert.Equal(t, ":8080", cfg.WebAddr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errSub string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "relative url", mutate: func(c *Config) { c.APIBaseURL = "localhost" }, errSub: "invalid api base url"},
		{name: "unknown driver", mutate: func(c *Config) { c.SessionDriver = "redis" }, errSub: "unknown session driver"},
		{name: "empty dsn", mutate: func(c *Config) { c.SessionDSN = "" }, errSub: "session dsn is empty"},
		{name: "negative ttl", mutate: func(c *Config) { c.SessionTTL = -time.Second }, errSub: "durations must not be negative"},
		{name: "negative rate", mutate: func(c *Config) { c.AuthRateLimit = -1 }, errSub: "rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			err := c.Validate()
			if tt.errSub == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.errSub)
		})
	}
}
