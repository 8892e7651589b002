// Package services holds the StockSense client application services shared by
// the web front and the CLI:
//
//   - SessionService: the single logical write, read, clear and purge of the
//     session record, including expiry.
//   - AuthService: form validation and the login and signup flows, which end
//     in a session write.
//
// Services take a context.Context on every call. The session the caller is
// acting under travels in that context (see package session).
package services
