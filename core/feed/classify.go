package feed

import (
	"errors"
	"net"
	"net/http"

	coreerrors "portfolio-feeds-api/core/errors"
)

// User-facing messages for a feed that no proxy service could load
const (
	MessageTimedOut     = "All RSS services timed out"
	MessageNotFound     = "RSS feed not found or access denied"
	MessageServerErrors = "RSS services experiencing server errors"
	MessageOffline      = "No internet connection"
	MessageUnavailable  = "Unable to load posts from any RSS service"
)

// classifyFailure picks the message for the first matching cause across all strategy errors
func classifyFailure(errs []error) string {
	var timedOut, clientErr, serverErr bool
	for _, err := range errs {
		if coreerrors.IsTimeout(err) {
			timedOut = true
		}
		if code, ok := coreerrors.HTTPStatus(err); ok {
			switch {
			case code >= http.StatusBadRequest && code < http.StatusInternalServerError:
				clientErr = true
			case code >= http.StatusInternalServerError:
				serverErr = true
			}
		}
	}

	switch {
	case timedOut:
		return MessageTimedOut
	case clientErr:
		return MessageNotFound
	case serverErr:
		return MessageServerErrors
	case offline(errs):
		return MessageOffline
	default:
		return MessageUnavailable
	}
}

// offline reports whether every attempted request failed before reaching a server.
// Strategies that never touch the network are ignored.
func offline(errs []error) bool {
	var attempted int
	for _, err := range errs {
		if errors.Is(err, coreerrors.ErrNotImplemented) {
			continue
		}
		attempted++
		if !isConnectionError(err) {
			return false
		}
	}
	return attempted > 0
}

func isConnectionError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
