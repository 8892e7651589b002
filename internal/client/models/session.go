// Package models defines client-side data models shared by the StockSense
// web front and CLI.
package models

import (
	"strings"
	"time"
)

// Profile is the cached identity shown by the dashboard.
type Profile struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// DisplayName is the name if known, otherwise the local part of the email.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	local, _, _ := strings.Cut(p.Email, "@")
	return local
}

// Initial is the avatar letter: the first letter of the name, or the
// upper-cased first letter of the email.
func (p Profile) Initial() string {
	if p.Name != "" {
		return string([]rune(p.Name)[:1])
	}
	if p.Email == "" {
		return ""
	}
	return strings.ToUpper(string([]rune(p.Email)[:1]))
}

// Session is a bearer token together with the profile it belongs to. It is
// persisted as a single record, so a stored session always has both.
type Session struct {
	// ID identifies the record: a cookie value on the web, a fixed key in the CLI.
	ID string

	// Token is the opaque bearer credential issued by the API.
	Token string

	Profile Profile

	CreatedAt time.Time

	// ExpiresAt is zero when the session has no client-side expiry.
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
