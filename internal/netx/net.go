// Package netx provides small networking helpers shared by the HTTP client
// layer: classification of transport-level failures that produced no response.
package netx

import (
	"context"
	"errors"
	"net"
	"net/url"
)

// IsCancelled reports whether err is the result of caller-initiated
// cancellation rather than a transport failure.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsUnreachable reports whether err indicates the server could not be
// reached at all: DNS failure, refused connection, or a timeout before any
// response was received. Errors that carry an HTTP response are never
// classified here.
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		err = urlErr.Err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}
