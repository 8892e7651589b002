package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/stocksense/internal/client/services"
	"github.com/dmitrijs2005/stocksense/internal/client/session"
)

// requestLog logs one line per request through the service logger.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info(r.Context(), "http request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// withSession puts the cookie's session into the request context when it
// is readable. It never redirects.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(r)
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		sess, err := s.sessions.Read(r.Context(), id)
		switch {
		case err == nil:
			r = r.WithContext(session.NewContext(r.Context(), sess))
		case errors.Is(err, services.ErrNoSession):
			s.clearSessionCookie(w)
		default:
			s.log.Error(r.Context(), "session read failed", "error", err)
		}
		next.ServeHTTP(w, r)
	})
}

// requireSession guards protected pages: without a session the client is
// sent to the login page and nothing protected is rendered.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(r)
		if id == "" {
			seeOther(w, "/auth/login")
			return
		}

		sess, err := s.sessions.Read(r.Context(), id)
		if errors.Is(err, services.ErrNoSession) {
			s.clearSessionCookie(w)
			seeOther(w, "/auth/login")
			return
		}
		if err != nil {
			s.log.Error(r.Context(), "session read failed", "error", err)
			s.renderError(w, r, http.StatusInternalServerError, services.GenericErrorMessage)
			return
		}

		next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
	})
}

// seeOther redirects with 303 and an empty body.
func seeOther(w http.ResponseWriter, location string) {
	w.Header().Set("Location", location)
	w.WriteHeader(http.StatusSeeOther)
}
