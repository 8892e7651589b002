package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/stocksense/internal/client/models"
	"github.com/dmitrijs2005/stocksense/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/stocksense/internal/client/session"
	"github.com/dmitrijs2005/stocksense/internal/dbx"
	"github.com/dmitrijs2005/stocksense/internal/logging"
)

var (
	// ErrNoSession means there is no usable session: never written, cleared,
	// or expired.
	ErrNoSession = errors.New("no session")
	// ErrInvalidSession rejects a write that lacks a token or a profile.
	ErrInvalidSession = errors.New("invalid session")
	// ErrTokenExpired rejects a write whose token expired before it was
	// stored. It matches ErrInvalidSession too.
	ErrTokenExpired = fmt.Errorf("%w: token already expired", ErrInvalidSession)
)

// SessionService owns the session record.
type SessionService interface {
	// Write stores token and profile under id as one record. If ctx carries
	// a session with another id, that record is removed in the same
	// transaction.
	Write(ctx context.Context, id, token string, profile models.Profile) (*models.Session, error)
	// Read returns ErrNoSession when the record is absent or expired.
	Read(ctx context.Context, id string) (*models.Session, error)
	Clear(ctx context.Context, id string) error
	// Purge deletes every expired record and reports how many went.
	Purge(ctx context.Context) (int64, error)
}

type SessionOptions struct {
	// TTL caps the lifetime of a session. Zero leaves only the token's own
	// expiry, if it has one.
	TTL    time.Duration
	Logger logging.Logger
	// Now is the clock; time.Now when nil.
	Now func() time.Time
}

type sessionService struct {
	db    *sql.DB
	repos sessions.Factory
	ttl   time.Duration
	log   logging.Logger
	now   func() time.Time
}

func NewSessionService(db *sql.DB, repos sessions.Factory, opts SessionOptions) SessionService {
	s := &sessionService{db: db, repos: repos, ttl: opts.TTL, log: opts.Logger, now: opts.Now}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *sessionService) Write(ctx context.Context, id, token string, profile models.Profile) (*models.Session, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidSession)
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidSession)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("%w: empty email", ErrInvalidSession)
	}
	if !profile.Role.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidSession, models.ErrUnknownRole, profile.Role)
	}

	now := s.now().UTC().Truncate(time.Second)
	rec := &models.Session{
		ID:        id,
		Token:     token,
		Profile:   profile,
		CreatedAt: now,
		ExpiresAt: s.expiry(now, token),
	}
	if rec.Expired(s.now()) {
		s.log.Warn(ctx, "refusing expired token", "session_id", shortID(id), "expires_at", rec.ExpiresAt)
		return nil, ErrTokenExpired
	}

	prev, hasPrev := session.FromContext(ctx)
	if !hasPrev || prev.ID == "" || prev.ID == id {
		if err := s.repos(s.db).Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("write session: %w", err)
		}
	} else {
		err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := s.repos(tx)
			if err := repo.Delete(ctx, prev.ID); err != nil {
				return err
			}
			return repo.Save(ctx, rec)
		})
		if err != nil {
			return nil, fmt.Errorf("rotate session: %w", err)
		}
	}

	s.log.Info(ctx, "session written", "session_id", shortID(id), "role", profile.Role, "expires_at", rec.ExpiresAt)
	return rec, nil
}

func (s *sessionService) Read(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}

	repo := s.repos(s.db)
	rec, err := repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if rec == nil {
		return nil, ErrNoSession
	}

	reason := ""
	switch {
	case rec.Expired(s.now()):
		reason = "expired"
	case !rec.Profile.Role.Valid():
		reason = "unknown role"
		s.log.Warn(ctx, "stored session has unknown role", "session_id", shortID(id), "role", rec.Profile.Role)
	}
	if reason != "" {
		if err := repo.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("drop session: %w", err)
		}
		s.log.Info(ctx, "session dropped", "session_id", shortID(id), "reason", reason)
		return nil, ErrNoSession
	}
	return rec, nil
}

func (s *sessionService) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.repos(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info(ctx, "session cleared", "session_id", shortID(id))
	return nil
}

func (s *sessionService) Purge(ctx context.Context) (int64, error) {
	n, err := s.repos(s.db).DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	if n > 0 {
		s.log.Debug(ctx, "expired sessions purged", "count", n)
	}
	return n, nil
}

// expiry is the earlier of now+TTL and the token's exp claim. Zero means
// the session does not expire on this side.
func (s *sessionService) expiry(now time.Time, token string) time.Time {
	var exp time.Time
	if s.ttl > 0 {
		exp = now.Add(s.ttl)
	}
	if tokExp, ok := tokenExpiry(token); ok && (exp.IsZero() || tokExp.Before(exp)) {
		exp = tokExp
	}
	return exp
}

// tokenExpiry reads the exp claim of a JWT without verifying it. Opaque
// tokens report false.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time.UTC(), true
}

// shortID keeps session ids out of logs in full.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
