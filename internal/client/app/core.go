// Package app wires the pieces shared by the web front and the CLI: the
// session database, the API client and the services on top of them.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/stocksense/internal/client/client"
	"github.com/dmitrijs2005/stocksense/internal/client/config"
	"github.com/dmitrijs2005/stocksense/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/stocksense/internal/client/services"
	"github.com/dmitrijs2005/stocksense/internal/logging"
)

type Core struct {
	DB       *sql.DB
	API      client.Client
	Sessions services.SessionService
	Auth     services.AuthService
}

// NewCore opens the session database, migrates it and builds the services.
func NewCore(ctx context.Context, cfg *config.Config, log logging.Logger) (*Core, error) {
	db, err := client.InitDatabase(ctx, cfg.SessionDriver, cfg.SessionDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	factory, err := sessions.FactoryFor(cfg.SessionDriver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	api, err := client.NewHTTPClient(cfg.APIBaseURL, client.Options{
		Timeout: cfg.RequestTimeout,
		Logger:  log,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("api client init error: %w", err)
	}

	ss := services.NewSessionService(db, factory, services.SessionOptions{
		TTL:    cfg.SessionTTL,
		Logger: log.With("module", "sessions"),
	})
	as := services.NewAuthService(api, ss, log.With("module", "auth"))

	return &Core{DB: db, API: api, Sessions: ss, Auth: as}, nil
}

func (c *Core) Close() error {
	return c.DB.Close()
}
