// Package sessions persists client sessions. A session is stored as one row
// (token and JSON profile together), so every write is atomic.
package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/stocksense/internal/client/models"
	"github.com/dmitrijs2005/stocksense/internal/dbx"
)

type Repository interface {
	// Save inserts or replaces the session with s.ID.
	Save(ctx context.Context, s *models.Session) error
	// Get returns (nil, nil) when no session with id exists.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions whose expiry is at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Factory builds a Repository on top of a DB or transaction handle.
type Factory func(db dbx.DBTX) Repository

// FactoryFor returns the Factory for a driver name ("sqlite" or "postgres").
func FactoryFor(driver string) (Factory, error) {
	switch driver {
	case "sqlite":
		return func(db dbx.DBTX) Repository { return NewSQLiteRepository(db) }, nil
	case "postgres":
		return func(db dbx.DBTX) Repository { return NewPostgresRepository(db) }, nil
	default:
		return nil, fmt.Errorf("unsupported session driver %q", driver)
	}
}
