package api

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateSuppressed means an identical call was already in flight,
	// so this one was never sent. It is expected during bursts of repeated
	// commands; callers treat it as a no-op, never as a user-visible error.
	ErrDuplicateSuppressed = errors.New("duplicate request suppressed")

	// ErrCancelled means the caller aborted the request. Callers ignore it
	// silently.
	ErrCancelled = errors.New("request cancelled")

	// ErrUnreachable means no response was received at all. The message is
	// shown to the user as-is.
	ErrUnreachable = errors.New("cannot reach the RespireX server; check your connection and the configured backend URL")
)

// StatusError is a response received with a non-2xx status. The status code
// and body are kept intact for caller-specific handling (403 meaning the
// access is denied, 404 meaning the profile does not exist, and so on).
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
}

// HasStatus reports whether err is a StatusError with the given status code.
func HasStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
