package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/stocksense/internal/client/models"
	"github.com/dmitrijs2005/stocksense/internal/client/services"
)

// getSimpleText and getPassword point at the interactive input helpers and
// can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login prompts for credentials and signs in. Field errors are printed one
// per line; API errors print their message.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	s, err := a.auth.Login(a.withCurrent(ctx), sessionKey, services.LoginForm{
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.printf("Logged in as %s (%s)\n", s.Profile.Email, s.Profile.Role.Label())
	return nil
}

// Signup prompts for the account details, creates the account and logs in.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	role, err := getSimpleText(a.reader, "Enter role (Analyst, Manager, Admin) [Analyst]", a.out)
	if err != nil {
		return err
	}

	s, err := a.auth.Signup(a.withCurrent(ctx), sessionKey, services.SignupForm{
		Name:     name,
		Email:    email,
		Password: string(password),
		Role:     role,
	})
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.printf("Account created. Logged in as %s (%s)\n", s.Profile.Email, s.Profile.Role.Label())
	return nil
}

// Logout forgets the local session. Without one it only says so.
func (a *App) Logout(ctx context.Context) error {
	if _, ok := a.current(ctx); !ok {
		a.println("You are not logged in.")
		return nil
	}
	if err := a.auth.Logout(ctx, sessionKey); err != nil {
		a.report(ctx, err)
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) report(ctx context.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		for _, m := range ve.Messages() {
			a.println(m)
		}
		return
	}
	msg := services.UserMessage(err)
	if msg == services.GenericErrorMessage {
		a.log.Error(ctx, "command failed", "error", err)
	}
	a.println(msg)
}

// requireSession is the CLI guard: without a session it says so and starts
// the login prompt right away.
func (a *App) requireSession(ctx context.Context) (*models.Session, bool) {
	if s, ok := a.current(ctx); ok {
		return s, true
	}
	a.println("You are not logged in.")
	if err := a.Login(ctx); err != nil {
		return nil, false
	}
	return a.current(ctx)
}
