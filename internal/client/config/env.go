package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "STOCKSENSE_"

func init() {
	// A missing .env file is fine.
	_ = godotenv.Load()
}

// parseEnv overlays cfg with STOCKSENSE_* variables. All malformed values
// are reported together.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
			return
		}
		*dst = d
	}

	str("API_URL", &cfg.APIBaseURL)
	dur("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	str("SESSION_DRIVER", &cfg.SessionDriver)
	str("SESSION_DSN", &cfg.SessionDSN)
	dur("SESSION_TTL", &cfg.SessionTTL)
	dur("SESSION_PURGE_INTERVAL", &cfg.SessionPurgeInterval)
	str("WEB_ADDR", &cfg.WebAddr)
	str("LOG_LEVEL", &cfg.LogLevel)

	boolean := func(name string, dst *bool) {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
			return
		}
		*dst = b
	}
	boolean("COOKIE_SECURE", &cfg.CookieSecure)
	boolean("TRUST_PROXY", &cfg.TrustProxy)
	if v, ok := lookup(envPrefix + "AUTH_RATE_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sAUTH_RATE_LIMIT: %w", envPrefix, err))
		} else {
			cfg.AuthRateLimit = n
		}
	}

	return errors.Join(errs...)
}
