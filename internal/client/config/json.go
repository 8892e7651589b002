package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/stocksense/internal/flagx"
	"github.com/dmitrijs2005/stocksense/internal/timex"
)

// JsonConfig is the JSON file layout. Pointer fields distinguish "absent"
// from zero values so the file only overrides what it names.
type JsonConfig struct {
	APIBaseURL           *string         `json:"api_base_url"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	SessionDriver        *string         `json:"session_driver"`
	SessionDSN           *string         `json:"session_dsn"`
	SessionTTL           *timex.Duration `json:"session_ttl"`
	SessionPurgeInterval *timex.Duration `json:"session_purge_interval"`
	WebAddr              *string         `json:"web_addr"`
	CookieSecure         *bool           `json:"cookie_secure"`
	TrustProxy           *bool           `json:"trust_proxy"`
	AuthRateLimit        *int            `json:"auth_rate_limit"`
	LogLevel             *string         `json:"log_level"`
}

// parseJson overlays cfg with the file given by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.SessionDriver, jc.SessionDriver)
	setString(&cfg.SessionDSN, jc.SessionDSN)
	setString(&cfg.WebAddr, jc.WebAddr)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.SessionPurgeInterval != nil {
		cfg.SessionPurgeInterval = jc.SessionPurgeInterval.Duration
	}
	if jc.CookieSecure != nil {
		cfg.CookieSecure = *jc.CookieSecure
	}
	if jc.TrustProxy != nil {
		cfg.TrustProxy = *jc.TrustProxy
	}
	if jc.AuthRateLimit != nil {
		cfg.AuthRateLimit = *jc.AuthRateLimit
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
