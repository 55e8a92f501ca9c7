package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProbe_Outcomes(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"results": 20}`))
	}))
	defer ok.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid key"}`))
	}))
	defer failing.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name       string
		baseURL    string
		outcome    ProbeOutcome
		statusCode int
	}{
		{name: "success", baseURL: ok.URL, outcome: ProbeOK, statusCode: http.StatusOK},
		{name: "http error", baseURL: failing.URL, outcome: ProbeHTTPError, statusCode: http.StatusUnauthorized},
		{name: "connection error", baseURL: closedURL, outcome: ProbeConnectionError},
		{name: "malformed request", baseURL: "ftp://example.com", outcome: ProbeMalformedRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestClient(t, tt.baseURL).Probe(context.Background(), "/players", playersQuery("1"))

			if result.Outcome != tt.outcome {
				t.Errorf("Outcome = %q, want %q (err: %v)", result.Outcome, tt.outcome, result.Err)
			}
			if result.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", result.StatusCode, tt.statusCode)
			}
			if tt.outcome == ProbeOK && result.Err != nil {
				t.Errorf("Err = %v, want nil", result.Err)
			}
			if tt.outcome != ProbeOK && result.Err == nil {
				t.Error("Err should be set on failure")
			}
		})
	}
}

func TestProbe_HTTPErrorCarriesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"Too many requests"}`))
	}))
	defer server.Close()

	result := newTestClient(t, server.URL).Probe(context.Background(), "/players", nil)

	var statusErr *StatusError
	if !errors.As(result.Err, &statusErr) {
		t.Fatalf("Err = %v, want *StatusError", result.Err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", statusErr.StatusCode)
	}
	if string(result.Body) != `{"message":"Too many requests"}` {
		t.Errorf("Body = %s", result.Body)
	}
}
