package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/stocksense/internal/client/client"
	"github.com/dmitrijs2005/stocksense/internal/client/models"
	"github.com/dmitrijs2005/stocksense/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/stocksense/internal/client/services"
	"github.com/dmitrijs2005/stocksense/internal/logging"
)

// fakeAPI implements client.Client.
type fakeAPI struct {
	loginResp  *client.LoginResponse
	loginErr   error
	signupErr  error
	loginCalls int
	lastSignup client.SignupRequest
	lastLogin  client.LoginRequest
}

func (f *fakeAPI) Signup(_ context.Context, req client.SignupRequest) (*client.SignupResponse, error) {
	f.lastSignup = req
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return &client.SignupResponse{Message: "ok"}, nil
}

func (f *fakeAPI) Login(_ context.Context, req client.LoginRequest) (*client.LoginResponse, error) {
	f.loginCalls++
	f.lastLogin = req
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

type harness struct {
	api      *fakeAPI
	sessions services.SessionService
	out      *bytes.Buffer
}

// run feeds input to a fresh App on the shared session store and returns
// everything it printed.
func (h *harness) run(t *testing.T, input string) string {
	t.Helper()
	h.out.Reset()
	auth := services.NewAuthService(h.api, h.sessions, nil)
	a := newApp(auth, h.sessions, logging.Discard(), strings.NewReader(input), h.out)
	a.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	require.NoError(t, a.Run(context.Background()))
	return h.out.String()
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	noTerminal(t)

	db, err := client.InitDatabase(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	factory, err := sessions.FactoryFor("sqlite")
	require.NoError(t, err)

	return &harness{
		api:      &fakeAPI{loginResp: &client.LoginResponse{AccessToken: "abc", Role: "Manager"}},
		sessions: services.NewSessionService(db, factory, services.SessionOptions{TTL: time.Hour}),
		out:      &bytes.Buffer{},
	}
}

func TestLogin_ValidationMessagesAndNoCall(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "login\n\n\nexit\n")
	assert.Contains(t, out, "Email is required\nPassword is required\n")
	assert.Equal(t, 0, h.api.loginCalls)
}

func TestLogin_APIErrorMessage(t *testing.T) {
	h := newHarness(t)
	h.api.loginErr = &client.Error{Kind: client.KindRequest, Status: 401, Message: "Invalid credentials"}

	out := h.run(t, "login\na@x.io\nwrong\nexit\n")
	assert.Contains(t, out, "Invalid credentials\n")
	assert.Contains(t, out, "stocksense> ")
}

func TestLogin_WritesSessionAndUpdatesPrompt(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "login\njane@x.io\npw\nexit\n")
	assert.Contains(t, out, "Logged in as jane@x.io (Manager)")
	assert.Contains(t, out, "stocksense (jane@x.io manager)> ")

	s, err := h.sessions.Read(context.Background(), "cli")
	require.NoError(t, err)
	assert.Equal(t, "abc", s.Token)
	assert.Equal(t, models.RoleManager, s.Profile.Role)
}

func TestSessionSurvivesRestart(t *testing.T) {
	h := newHarness(t)
	h.run(t, "login\njane@x.io\npw\nexit\n")

	out := h.run(t, "whoami\nexit\n")
	assert.Contains(t, out, "jane@x.io")
	assert.NotContains(t, out, "You are not logged in.")
}

func TestDashboard_GuardStartsLogin(t *testing.T) {
	h := newHarness(t)
	h.api.loginResp = &client.LoginResponse{AccessToken: "t", Role: "admin"}

	out := h.run(t, "dashboard\nroot@x.io\npw\nexit\n")
	require.Contains(t, out, "You are not logged in.")
	assert.Contains(t, out, "Enter email")
	assert.Contains(t, out, "Welcome back, root")
	assert.Contains(t, out, "System Administration")
	assert.NotContains(t, out, "Portfolio Management")
	assert.Equal(t, 1, h.api.loginCalls)
}

func TestDashboard_GuardLoginFailureRendersNothing(t *testing.T) {
	h := newHarness(t)
	h.api.loginErr = &client.Error{Kind: client.KindTransport, Message: "unable to reach the server"}

	out := h.run(t, "dashboard\na@x.io\npw\nexit\n")
	assert.Contains(t, out, "You are not logged in.")
	assert.Contains(t, out, "unable to reach the server")
	assert.NotContains(t, out, "Welcome back")
}

func TestDashboard_AnalystSeesNoPanels(t *testing.T) {
	h := newHarness(t)
	h.api.loginResp = &client.LoginResponse{AccessToken: "t", Role: "Analyst"}

	out := h.run(t, "login\na@x.io\npw\ndashboard\nexit\n")
	assert.Contains(t, out, "Top stocks")
	assert.NotContains(t, out, "System Administration")
	assert.NotContains(t, out, "Portfolio Management")
}

func TestSignup_ShortPassword(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "signup\nJane\njane@x.io\n12345\n\nexit\n")
	assert.Contains(t, out, "Password must be at least 6 characters")
	assert.Equal(t, 0, h.api.loginCalls)
}

func TestSignup_LogsIn(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "signup\nJane Doe\njane@x.io\nsecret\nmanager\nwhoami\nexit\n")
	assert.Contains(t, out, "Account created. Logged in as jane@x.io (Manager)")
	assert.Contains(t, out, "Jane Doe")
	assert.Equal(t, "Manager", h.api.lastSignup.Role)
}

func TestLogout(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "login\na@x.io\npw\nlogout\nwhoami\n\n\nexit\n")
	assert.Contains(t, out, "Logged out.")
	assert.Contains(t, out, "You are not logged in.")

	_, err := h.sessions.Read(context.Background(), "cli")
	assert.ErrorIs(t, err, services.ErrNoSession)
}

func TestLogout_WhenLoggedOut(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "logout\nexit\n")
	assert.Contains(t, out, "You are not logged in.")
	assert.NotContains(t, out, "Logged out.")
	assert.Equal(t, 0, h.api.loginCalls)
}
