package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

const (
	msgUnreachable     = "unable to reach the server"
	msgInvalidResponse = "invalid response from server"
)

// Kind separates rejected requests from calls that never got a usable answer.
type Kind int

const (
	// KindRequest: the server answered with a non-2xx status.
	KindRequest Kind = iota + 1
	// KindTransport: dial, TLS, timeout, cancellation or an unreadable body.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is the single error type of API calls.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "api error"
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrUnavailable and ErrUnauthorized.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindTransport
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

func transportError(op string, status int, msg string, err error) *Error {
	return &Error{Op: op, Kind: KindTransport, Status: status, Message: msg, Err: err}
}

func requestError(op string, status int, body errorBody) *Error {
	msg := body.message()
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	return &Error{
		Op:      op,
		Kind:    KindRequest,
		Status:  status,
		Message: msg,
		Err:     fmt.Errorf("%s: status %d", op, status),
	}
}
