// Package web is the server-rendered StockSense front: landing page, signup
// and login forms, the guarded dashboard and logout.
//
// The browser only holds an opaque session id cookie. The session record
// itself lives in the session store and reaches handlers through the
// request context.
package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/stocksense/internal/client/services"
	"github.com/dmitrijs2005/stocksense/internal/logging"
)

type Options struct {
	CookieSecure bool
	// TrustProxy takes the client address from X-Forwarded-For or
	// X-Real-IP. Off, the limiter keys on the TCP peer.
	TrustProxy bool
	// AuthRateLimit is the number of login/signup attempts allowed per
	// client IP and minute. Zero disables the limit.
	AuthRateLimit int
	Logger        logging.Logger
	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

type Server struct {
	auth         services.AuthService
	sessions     services.SessionService
	log          logging.Logger
	pages        *renderer
	limiter      *multiLimiter
	busy         *busyGuard
	cookieSecure bool
	trustProxy   bool
	now          func() time.Time
	newID        func() string
}

func NewServer(auth services.AuthService, sessions services.SessionService, opts Options) (*Server, error) {
	if auth == nil || sessions == nil {
		return nil, errors.New("web: auth and session services are required")
	}
	pages, err := newRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		auth:         auth,
		sessions:     sessions,
		log:          opts.Logger,
		pages:        pages,
		limiter:      newPerMinuteLimiter(opts.AuthRateLimit),
		busy:         newBusyGuard(),
		cookieSecure: opts.CookieSecure,
		trustProxy:   opts.TrustProxy,
		now:          opts.Now,
		newID:        opts.NewID,
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	s.log = s.log.With("module", "web")
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s, nil
}

// Handler returns the routed handler with the middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if s.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(s.requestLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/", s.handleLanding)
		r.Route("/auth", func(r chi.Router) {
			r.Get("/login", s.handleLoginForm)
			r.Post("/login", s.handleLogin)
			r.Get("/signup", s.handleSignupForm)
			r.Post("/signup", s.handleSignup)
			r.Post("/logout", s.handleLogout)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/dashboard", s.handleDashboard)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "Page not found")
	})

	return r
}
