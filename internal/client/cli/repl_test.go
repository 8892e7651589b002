package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) Signup(context.Context) error {
	f.calls = append(f.calls, "signup")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Dashboard(context.Context) error {
	f.calls = append(f.calls, "dashboard")
	return nil
}
func (f *fakeExec) Whoami(context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"login",
		"",
		"help",
		"DASHBOARD",
		"whoami",
		"foobar",
		"logout",
		"signup",
		"exit",
		"login",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func(context.Context) string { return "> " },
		bufio.NewReader(strings.NewReader(input)), &out)

	assert.Equal(t, []string{"login", "dashboard", "whoami", "logout", "signup"}, exec.calls)

	got := out.String()
	assert.Contains(t, got, "Available commands: signup, login, dashboard, exit")
	assert.Contains(t, got, "Available commands: dashboard, whoami, logout, exit")
	assert.Contains(t, got, "Unknown command: foobar")
	assert.Contains(t, got, "Bye!")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func(context.Context) string { return "> " },
		bufio.NewReader(strings.NewReader("whoami")), &out)

	assert.Equal(t, []string{"whoami"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(ctx, exec, func(context.Context) string { return "> " },
		bufio.NewReader(strings.NewReader("login\n")), &out)

	assert.Empty(t, exec.calls)
	assert.Empty(t, out.String())
}
