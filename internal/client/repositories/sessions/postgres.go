package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/stocksense/internal/client/models"
	"github.com/dmitrijs2005/stocksense/internal/dbx"
)

// PostgresRepository shares sessions between several web front instances.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, s *models.Session) error {
	rec, err := toRecord(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token, profile, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			token = EXCLUDED.token,
			profile = EXCLUDED.profile,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at
	`, rec.id, rec.token, string(rec.profile), rec.createdAt, rec.expiresAt)
	if err != nil {
		return fmt.Errorf("db error: save session: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	var rec record
	err := r.db.QueryRowContext(ctx,
		`SELECT id, token, profile, created_at, expires_at FROM sessions WHERE id = $1`, id,
	).Scan(&rec.id, &rec.token, &rec.profile, &rec.createdAt, &rec.expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: get session: %w", err)
	}
	return rec.toSession()
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: delete session: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= $1`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("db error: delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: rows affected: %w", err)
	}
	return n, nil
}
