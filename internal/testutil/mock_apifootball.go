// Package testutil provides testing utilities for the player stats ETL.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// MockResponse overrides the response for one page.
type MockResponse struct {
	StatusCode int
	Body       string
}

// MockAPIFootball is an httptest server that serves the /players endpoint
// page by page from fixed per-page player lists.
type MockAPIFootball struct {
	server *httptest.Server

	mu        sync.RWMutex
	pages     [][]string
	overrides map[int]MockResponse

	// Tracking
	requestedPages []int
	lastHeader     http.Header
}

// NewMockAPIFootball creates a mock serving the given pages. Each page is a
// list of player JSON objects (see PlayerJSON).
func NewMockAPIFootball(pages ...[]string) *MockAPIFootball {
	mock := &MockAPIFootball{
		pages:     pages,
		overrides: make(map[int]MockResponse),
	}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

// URL returns the mock server URL.
func (m *MockAPIFootball) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPIFootball) Close() {
	m.server.Close()
}

// SetPageResponse replaces the response for page with a fixed status and body.
func (m *MockAPIFootball) SetPageResponse(page int, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[page] = resp
}

// ClearPageResponse restores the regular response for page.
func (m *MockAPIFootball) ClearPageResponse(page int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overrides, page)
}

// RequestedPages returns the page numbers requested, in order.
func (m *MockAPIFootball) RequestedPages() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.requestedPages...)
}

// LastHeader returns the headers of the most recent request.
func (m *MockAPIFootball) LastHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastHeader
}

// Reset clears request tracking.
func (m *MockAPIFootball) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestedPages = nil
	m.lastHeader = nil
}

func (m *MockAPIFootball) handle(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	m.mu.Lock()
	m.requestedPages = append(m.requestedPages, page)
	m.lastHeader = r.Header.Clone()
	override, hasOverride := m.overrides[page]
	pages := m.pages
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if hasOverride {
		w.WriteHeader(override.StatusCode)
		w.Write([]byte(override.Body))
		return
	}

	if r.URL.Path != "/players" {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Endpoint not found"}`))
		return
	}
	if r.Header.Get("x-rapidapi-key") == "" {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"errors":{"token":"Error/Missing application key. Go to https://www.api-football.com/documentation-v3 to learn how to get your API application key."},"results":0,"paging":{"current":1,"total":1},"response":[]}`))
		return
	}

	var players []string
	if page <= len(pages) {
		players = pages[page-1]
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(PageJSON(page, len(pages), players)))
}

// PageJSON renders a players page envelope. Paging counters are sent as
// strings for even pages and numbers for odd ones, as the upstream mixes both.
func PageJSON(current, total int, players []string) string {
	counter := func(n int) string {
		if current%2 == 0 {
			return strconv.Quote(strconv.Itoa(n))
		}
		return strconv.Itoa(n)
	}
	return fmt.Sprintf(
		`{"get":"players","parameters":{"page":"%d"},"errors":[],"results":%d,"paging":{"current":%s,"total":%s},"response":[%s]}`,
		current, len(players), counter(current), counter(total), strings.Join(players, ","),
	)
}

// PlayerJSON renders a minimal but complete player record with every
// statistics leaf derived from id, so tests can predict normalized values.
func PlayerJSON(id int) string {
	n := func(offset int) string { return strconv.Quote(strconv.Itoa(id + offset)) }
	record := map[string]any{
		"player": map[string]any{
			"id":          id,
			"name":        fmt.Sprintf("Player %d", id),
			"age":         20 + id%15,
			"nationality": "Italy",
		},
		"statistics": []any{map[string]any{
			"team":     map[string]any{"id": 496, "name": "Juventus"},
			"league":   map[string]any{"id": 135, "name": "Serie A"},
			"games":    map[string]any{"position": "Midfielder", "rating": "7.1", "appearences": json.RawMessage(n(0)), "minutes": json.RawMessage(n(100))},
			"goals":    map[string]any{"total": json.RawMessage(n(1)), "assists": nil},
			"shots":    map[string]any{"total": json.RawMessage(n(2)), "on": json.RawMessage(n(3))},
			"penalty":  map[string]any{"scored": nil, "missed": nil},
			"passes":   map[string]any{"total": json.RawMessage(n(4)), "key": json.RawMessage(n(5))},
			"dribbles": map[string]any{"attempts": json.RawMessage(n(6)), "success": json.RawMessage(n(7))},
			"tackles":  map[string]any{"total": json.RawMessage(n(8)), "interceptions": json.RawMessage(n(9))},
			"duels":    map[string]any{"total": json.RawMessage(n(10)), "won": json.RawMessage(n(11))},
			"fouls":    map[string]any{"committed": json.RawMessage(n(12))},
			"cards":    map[string]any{"yellow": json.RawMessage(n(13)), "yellowred": nil, "red": nil},
		}},
	}
	out, err := json.Marshal(record)
	if err != nil {
		panic(err)
	}
	return string(out)
}

// Players renders PlayerJSON for ids from..to inclusive.
func Players(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for id := from; id <= to; id++ {
		out = append(out, PlayerJSON(id))
	}
	return out
}
