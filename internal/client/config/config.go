package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime settings shared by the web front and the CLI.
//
// RequestTimeout of zero leaves calls to the authentication API bounded only
// by their context. SessionTTL of zero means sessions expire only with the
// token's own exp claim, if it has one.
type Config struct {
	APIBaseURL           string
	RequestTimeout       time.Duration
	SessionDriver        string
	SessionDSN           string
	SessionTTL           time.Duration
	SessionPurgeInterval time.Duration
	WebAddr              string
	CookieSecure         bool
	TrustProxy           bool
	AuthRateLimit        int
	LogLevel             string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 0
	c.SessionDriver = DriverSQLite
	c.SessionDSN = "stocksense.db"
	c.SessionTTL = 24 * time.Hour
	c.SessionPurgeInterval = 10 * time.Minute
	c.WebAddr = ":3000"
	c.CookieSecure = false
	c.TrustProxy = false
	c.AuthRateLimit = 10
	c.LogLevel = "info"
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid api base url %q", c.APIBaseURL))
	}
	if c.SessionDriver != DriverSQLite && c.SessionDriver != DriverPostgres {
		errs = append(errs, fmt.Errorf("unknown session driver %q", c.SessionDriver))
	}
	if c.SessionDSN == "" {
		errs = append(errs, errors.New("session dsn is empty"))
	}
	if c.RequestTimeout < 0 || c.SessionTTL < 0 || c.SessionPurgeInterval < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	if c.AuthRateLimit < 0 {
		errs = append(errs, errors.New("auth rate limit must not be negative"))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and the process flags, then validates it.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
