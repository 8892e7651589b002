// Package config loads runtime configuration for the StockSense web front
// and CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables, after an optional .env file is loaded.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the authentication API
//	-d string   session store DSN
//	-l string   listen address of the web front
//	-v string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations accept strings like "24h" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "session_driver": "sqlite",
//	  "session_dsn": "stocksense.db",
//	  "session_ttl": "24h"
//	}
package config
