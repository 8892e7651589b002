package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/stocksense/internal/client/client"
	"github.com/dmitrijs2005/stocksense/internal/client/dashboard"
	"github.com/dmitrijs2005/stocksense/internal/client/models"
	"github.com/dmitrijs2005/stocksense/internal/client/services"
	"github.com/dmitrijs2005/stocksense/internal/client/session"
)

const (
	msgBusy        = "A request is already in progress"
	msgRateLimited = "Too many attempts, please try again later"
)

func (s *Server) page(r *http.Request, title string) pageData {
	d := pageData{Title: title}
	if sess, ok := session.FromContext(r.Context()); ok {
		d.Session = sess
	}
	return d
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if err := s.pages.render(w, status, name, data); err != nil {
		s.log.Error(r.Context(), "render failed", "page", name, "error", err)
		http.Error(w, services.GenericErrorMessage, http.StatusInternalServerError)
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	d := s.page(r, http.StatusText(status))
	d.General = msg
	s.renderPage(w, r, status, "error", d)
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, "landing", s.page(r, "Smarter stock analytics"))
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, "login", s.page(r, "Log in"))
}

func (s *Server) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	d := s.page(r, "Sign up")
	d.Roles = roleOptions("")
	s.renderPage(w, r, http.StatusOK, "signup", d)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := services.LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	d := s.page(r, "Log in")
	d.Form = formValues{Email: form.Email}

	release, status, msg := s.admit(r, "login")
	if release == nil {
		d.General = msg
		s.renderPage(w, r, status, "login", d)
		return
	}
	defer release()

	sess, err := s.auth.Login(r.Context(), s.newID(), form)
	if err != nil {
		s.renderAuthFailure(w, r, "login", d, err)
		return
	}
	s.signedIn(w, r, sess)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	form := services.SignupForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}
	d := s.page(r, "Sign up")
	d.Form = formValues{Name: form.Name, Email: form.Email, Role: form.Role}
	d.Roles = roleOptions(form.Role)

	release, status, msg := s.admit(r, "signup")
	if release == nil {
		d.General = msg
		s.renderPage(w, r, status, "signup", d)
		return
	}
	defer release()

	sess, err := s.auth.Signup(r.Context(), s.newID(), form)
	if err != nil {
		s.renderAuthFailure(w, r, "signup", d, err)
		return
	}
	s.signedIn(w, r, sess)
}

// admit applies the rate limit and the busy flag to an auth submission.
// A nil release means the submission is refused with status and msg.
func (s *Server) admit(r *http.Request, form string) (release func(), status int, msg string) {
	ip := clientIP(r)
	if !s.limiter.allow(ip) {
		s.log.Warn(r.Context(), "auth attempt rate limited", "form", form, "ip", ip)
		return nil, http.StatusTooManyRequests, msgRateLimited
	}
	release, ok := s.busy.acquire(ip + "|" + form)
	if !ok {
		return nil, http.StatusConflict, msgBusy
	}
	return release, 0, ""
}

func (s *Server) signedIn(w http.ResponseWriter, r *http.Request, sess *models.Session) {
	s.setSessionCookie(w, sess)
	seeOther(w, "/dashboard")
}

// renderAuthFailure re-renders the form with field messages or the general
// error, with a status that reflects the failure.
func (s *Server) renderAuthFailure(w http.ResponseWriter, r *http.Request, page string, d pageData, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		d.Errors = ve.Fields
		s.renderPage(w, r, http.StatusUnprocessableEntity, page, d)
		return
	}

	d.General = services.UserMessage(err)
	status := failureStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error(r.Context(), "auth flow failed", "form", page, "error", err)
	}
	s.renderPage(w, r, status, page, d)
}

func failureStatus(err error) int {
	if errors.Is(err, services.ErrTokenExpired) {
		return http.StatusBadGateway
	}
	var apiErr *client.Error
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError
	}
	switch {
	case apiErr.Kind == client.KindTransport:
		return http.StatusBadGateway
	case errors.Is(err, client.ErrUnauthorized):
		return http.StatusUnauthorized
	case apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if id := sessionID(r); id != "" {
		if err := s.auth.Logout(r.Context(), id); err != nil {
			s.log.Error(r.Context(), "logout failed", "error", err)
			s.renderError(w, r, http.StatusInternalServerError, services.GenericErrorMessage)
			return
		}
	}
	s.clearSessionCookie(w)
	seeOther(w, "/")
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		seeOther(w, "/auth/login")
		return
	}
	view := dashboard.Build(sess.Profile, s.now())

	d := s.page(r, "Dashboard")
	d.Dashboard = &view
	s.renderPage(w, r, http.StatusOK, "dashboard", d)
}
