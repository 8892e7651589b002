// Package client is the StockSense API gateway client and the bootstrap of
// the local session database.
//
// # API calls
//
// Client describes the authentication API (Signup, Login). HTTPClient
// implements it over JSON/HTTP against a configured base URL. When the call
// context carries a session (see package session) its token is sent as
// "Authorization: Bearer <token>"; otherwise no Authorization header is set.
//
// # Error Handling
//
// Every failure of an API call is a *Error. Its Message is meant for the
// user: the server's "detail" for rejected requests, a fixed text for
// transport failures. Callers can match conditions with errors.Is:
// ErrUnavailable (the server could not be reached or answered garbage) and
// ErrUnauthorized (401 or 403).
//
// # Database
//
// InitDatabase opens the session database for a driver ("sqlite" or
// "postgres") and applies the embedded goose migrations.
package client
