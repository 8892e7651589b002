package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/stocksense/internal/client/app"
	"github.com/dmitrijs2005/stocksense/internal/client/config"
	"github.com/dmitrijs2005/stocksense/internal/client/services"
	"github.com/dmitrijs2005/stocksense/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// Run serves the web front until ctx is cancelled, then shuts down
// gracefully. Expired sessions are purged in the background.
func Run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	core, err := app.NewCore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer core.Close()

	srv, err := NewServer(core.Auth, core.Sessions, Options{
		CookieSecure:  cfg.CookieSecure,
		TrustProxy:    cfg.TrustProxy,
		AuthRateLimit: cfg.AuthRateLimit,
		Logger:        log,
	})
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(gctx, "Starting web server", "address", cfg.WebAddr, "api", cfg.APIBaseURL)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "Stopping web server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		janitor(gctx, core.Sessions, cfg.SessionPurgeInterval, log)
		return nil
	})

	return g.Wait()
}

// janitor purges expired sessions every interval until ctx ends. A zero
// interval disables it.
func janitor(ctx context.Context, sessions services.SessionService, interval time.Duration, log logging.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n, err := sessions.Purge(ctx); err != nil {
				log.Warn(ctx, "session purge failed", "error", err)
			} else if n > 0 {
				log.Info(ctx, "expired sessions purged", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
