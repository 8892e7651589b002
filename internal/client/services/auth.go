package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/stocksense/internal/client/client"
	"github.com/dmitrijs2005/stocksense/internal/client/models"
	"github.com/dmitrijs2005/stocksense/internal/logging"
)

// AuthService runs the sign-in flows. Each successful flow ends in exactly
// one session write under the given id.
//
// Errors are one of:
//   - *ValidationError: the form was rejected before any network call;
//   - *client.Error: the API rejected the call or could not be reached;
//   - anything else: an internal failure (session store, unknown role).
type AuthService interface {
	Login(ctx context.Context, id string, form LoginForm) (*models.Session, error)
	// Signup registers the account and then logs in with the same
	// credentials.
	Signup(ctx context.Context, id string, form SignupForm) (*models.Session, error)
	Logout(ctx context.Context, id string) error
}

type authService struct {
	client   client.Client
	sessions SessionService
	log      logging.Logger
}

func NewAuthService(c client.Client, sessions SessionService, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{client: c, sessions: sessions, log: log}
}

func (a *authService) Login(ctx context.Context, id string, form LoginForm) (*models.Session, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	resp, err := a.client.Login(ctx, client.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		return nil, err
	}

	role, err := models.ParseRole(resp.Role)
	if err != nil {
		a.log.Warn(ctx, "login returned unknown role", "role", resp.Role)
		return nil, fmt.Errorf("login: %w", err)
	}

	return a.sessions.Write(ctx, id, resp.AccessToken, models.Profile{Email: form.Email, Role: role})
}

func (a *authService) Signup(ctx context.Context, id string, form SignupForm) (*models.Session, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}
	requested := form.RoleOrDefault()

	if _, err := a.client.Signup(ctx, client.SignupRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     requested.Label(),
	}); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "account created", "role", requested)

	resp, err := a.client.Login(ctx, client.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		a.log.Warn(ctx, "login after signup failed", "error", err)
		return nil, err
	}

	role := requested
	if strings.TrimSpace(resp.Role) != "" {
		if role, err = models.ParseRole(resp.Role); err != nil {
			a.log.Warn(ctx, "login returned unknown role", "role", resp.Role)
			return nil, fmt.Errorf("signup: %w", err)
		}
	}

	return a.sessions.Write(ctx, id, resp.AccessToken, models.Profile{
		Name:  form.Name,
		Email: form.Email,
		Role:  role,
	})
}

func (a *authService) Logout(ctx context.Context, id string) error {
	return a.sessions.Clear(ctx, id)
}

// UserMessage is the general error text to show for err: the API's message
// for API failures, a generic text otherwise. Validation errors are shown
// per field and are not covered here.
func UserMessage(err error) string {
	var apiErr *client.Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, ErrTokenExpired):
		return ExpiredTokenMessage
	}
	return GenericErrorMessage
}

const (
	GenericErrorMessage = "Something went wrong, please try again"
	ExpiredTokenMessage = "The server issued an expired session, please try again later"
)
