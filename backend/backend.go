package backend

import (
	"errors"
	"fmt"
)

// ErrUnauthorized means the credential was missing, expired or rejected.
// It is terminal for the current session: callers must re-authenticate.
var ErrUnauthorized = errors.New("remote store rejected credentials")

// ErrUnavailable covers network failures and every other non-success response.
var ErrUnavailable = errors.New("remote store unavailable")

type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == 401 || e.StatusCode == 403 {
		return ErrUnauthorized
	}
	return ErrUnavailable
}

// Classify maps an error from a remote call to a short label for logs and metrics.
func Classify(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "unavailable"
	}
}
