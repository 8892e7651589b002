package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/stocksense/internal/client/client"
	"github.com/dmitrijs2005/stocksense/internal/client/repositories/sessions"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func newSessionService(t *testing.T, ttl time.Duration) (SessionService, *sql.DB, *clock) {
	t.Helper()
	db := setupDB(t)
	clk := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	factory, err := sessions.FactoryFor("sqlite")
	require.NoError(t, err)
	svc := NewSessionService(db, factory, SessionOptions{TTL: ttl, Now: clk.Now})
	return svc, db, clk
}

func countSessions(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n))
	return n
}

// ---- fake client ----

type fakeClient struct {
	SignupRet *client.SignupResponse
	SignupErr error
	LoginRet  *client.LoginResponse
	LoginErr  error

	SignupCalls int
	LoginCalls  int

	LastSignup client.SignupRequest
	LastLogin  client.LoginRequest
}

func (f *fakeClient) Signup(ctx context.Context, req client.SignupRequest) (*client.SignupResponse, error) {
	f.SignupCalls++
	f.LastSignup = req
	if f.SignupErr != nil {
		return nil, f.SignupErr
	}
	if f.SignupRet == nil {
		return &client.SignupResponse{Message: "ok"}, nil
	}
	return f.SignupRet, nil
}

func (f *fakeClient) Login(ctx context.Context, req client.LoginRequest) (*client.LoginResponse, error) {
	f.LoginCalls++
	f.LastLogin = req
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginRet, nil
}
