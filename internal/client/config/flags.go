package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/stocksense/internal/flagx"
)

// parseFlags overlays cfg with the flags this package owns. Other flags are
// filtered out first so they do not break parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-l", "-v"})

	fs := flag.NewFlagSet("stocksense", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the authentication API")
	fs.StringVar(&cfg.SessionDSN, "d", cfg.SessionDSN, "session store DSN")
	fs.StringVar(&cfg.WebAddr, "l", cfg.WebAddr, "web listen address")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
