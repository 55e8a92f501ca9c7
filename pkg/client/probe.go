package client

import (
	"context"
	"errors"
	"net/url"
)

// ProbeOutcome names the result of a diagnostic request.
type ProbeOutcome string

const (
	ProbeOK               ProbeOutcome = "ok"
	ProbeHTTPError        ProbeOutcome = "http_error"
	ProbeConnectionError  ProbeOutcome = "connection_error"
	ProbeTimeoutError     ProbeOutcome = "timeout_error"
	ProbeMalformedRequest ProbeOutcome = "malformed_request"
	ProbeUnknownError     ProbeOutcome = "unknown_error"
)

// ProbeResult describes a single diagnostic request.
type ProbeResult struct {
	Outcome    ProbeOutcome
	StatusCode int
	Body       []byte
	Err        error
}

// Probe issues one request and reports how it went instead of returning an
// error. Each failure kind is logged with its own message so a broken key,
// an unreachable host and a slow upstream are told apart at a glance.
func (c *Client) Probe(ctx context.Context, endpoint string, params url.Values) ProbeResult {
	resp, err := c.Get(ctx, endpoint, params)
	if err != nil {
		result := ProbeResult{Outcome: ProbeUnknownError, Err: err}

		var transportErr *TransportError
		if errors.As(err, &transportErr) {
			switch transportErr.Class {
			case ErrorClassConnection:
				result.Outcome = ProbeConnectionError
			case ErrorClassTimeout:
				result.Outcome = ProbeTimeoutError
			case ErrorClassMalformedRequest:
				result.Outcome = ProbeMalformedRequest
			}
		}

		c.logger.Error().
			Err(err).
			Str("endpoint", endpoint).
			Str("outcome", string(result.Outcome)).
			Msg("Probe failed")
		return result
	}

	if !resp.OK() {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Endpoint: endpoint, Body: resp.Body}
		c.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("endpoint", endpoint).
			Str("body", string(resp.Body)).
			Msg("Probe received HTTP error")
		return ProbeResult{
			Outcome:    ProbeHTTPError,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Err:        statusErr,
		}
	}

	c.logger.Info().
		Int("status_code", resp.StatusCode).
		Str("endpoint", endpoint).
		Bool("from_cache", resp.FromCache).
		Int("bytes", len(resp.Body)).
		Msg("Probe succeeded")
	return ProbeResult{Outcome: ProbeOK, StatusCode: resp.StatusCode, Body: resp.Body}
}
