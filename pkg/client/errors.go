package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// ErrAPIKeyRequired is returned by New when no api-sports key is configured.
var ErrAPIKeyRequired = errors.New("api key is required")

// ErrorClass classifies transport failures.
type ErrorClass string

const (
	// ErrorClassConnection covers DNS, refused and reset connections.
	ErrorClassConnection ErrorClass = "connection"

	// ErrorClassTimeout covers client and context deadlines.
	ErrorClassTimeout ErrorClass = "timeout"

	// ErrorClassMalformedRequest covers requests that could not be built or sent as-is.
	ErrorClassMalformedRequest ErrorClass = "malformed_request"

	// ErrorClassUnknown is everything else, including cancellation.
	ErrorClassUnknown ErrorClass = "unknown"
)

// TransportError is a failure below HTTP: no status code was received.
type TransportError struct {
	Class    ErrorClass
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("api-football %s error (%s): %v", e.Class, e.Endpoint, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx response. Body is the raw upstream body.
type StatusError struct {
	StatusCode int
	Endpoint   string
	Body       []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	if body == "" {
		return fmt.Sprintf("api-football %s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("api-football %s: unexpected status %d: %s", e.Endpoint, e.StatusCode, body)
}

// classifyTransportError maps an error from building or sending a request
// onto an ErrorClass.
func classifyTransportError(err error) ErrorClass {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorClassTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorClassTimeout
	}

	if errors.Is(err, context.Canceled) {
		return ErrorClassUnknown
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	switch {
	case errors.As(err, &dnsErr), errors.As(err, &opErr),
		errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return ErrorClassConnection
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		msg := urlErr.Err.Error()
		if urlErr.Op == "parse" ||
			strings.Contains(msg, "unsupported protocol scheme") ||
			strings.Contains(msg, "no Host in request URL") {
			return ErrorClassMalformedRequest
		}
	}

	return ErrorClassUnknown
}
