package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated indicates the bearer token is missing, expired, or
	// rejected. Callers must clear the session and return to login.
	ErrUnauthenticated = errors.New("authentication invalid")

	// ErrConflict indicates the server refused a mutation because the entity
	// state changed underneath it (e.g. the record was locked).
	ErrConflict = errors.New("record locked by another change")

	// ErrNetworkUnavailable indicates the request never reached the server.
	ErrNetworkUnavailable = errors.New("server unreachable")
)

// ServerError is a non-2xx response carrying a server-provided message.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server rejected the request (status %d)", e.Status)
}

// UserMessage maps any API error to the string shown to the user: the server's
// own message where available, otherwise a kind-specific fallback.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return "Session expired. Please log in again."
	case errors.Is(err, ErrConflict):
		return "This record was locked by another change. Returning to the list."
	case errors.Is(err, ErrNetworkUnavailable):
		return "Could not reach the server. Check your connection and try again."
	}
	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return srvErr.Error()
	}
	return "Something went wrong. Please try again."
}
