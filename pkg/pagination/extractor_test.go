package pagination

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/Sternrassler/player-stats-etl/internal/testutil"
	"github.com/Sternrassler/player-stats-etl/pkg/apifootball"
	"github.com/Sternrassler/player-stats-etl/pkg/client"
)

// fakeGetter answers each page from a fixed table and records the pages asked for.
type fakeGetter struct {
	responses map[int]*client.Response
	errs      map[int]error
	requested []int
	onGet     func(page int)
}

func (f *fakeGetter) Get(ctx context.Context, endpoint string, params url.Values) (*client.Response, error) {
	page, _ := strconv.Atoi(params.Get("page"))
	f.requested = append(f.requested, page)
	if f.onGet != nil {
		f.onGet(page)
	}
	if err := f.errs[page]; err != nil {
		return nil, err
	}
	if resp, ok := f.responses[page]; ok {
		return resp, nil
	}
	return &client.Response{StatusCode: http.StatusNotFound, Body: []byte(`not found`)}, nil
}

// pagedGetter builds a fakeGetter serving len(sizes) pages with sizes[i] players on page i+1.
func pagedGetter(sizes ...int) *fakeGetter {
	f := &fakeGetter{responses: map[int]*client.Response{}, errs: map[int]error{}}
	id := 1
	for i, size := range sizes {
		f.responses[i+1] = &client.Response{
			StatusCode: http.StatusOK,
			Body:       []byte(testutil.PageJSON(i+1, len(sizes), testutil.Players(id, id+size-1))),
		}
		id += size
	}
	return f
}

var playersRequest = Request{
	Endpoint: apifootball.PlayersEndpoint,
	League:   "135",
	Season:   "2023",
	Team:     "496",
}

func TestFetchAllPages_WalksEveryPage(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
	}{
		{name: "single page", sizes: []int{20}},
		{name: "three pages", sizes: []int{20, 20, 7}},
		{name: "five uneven pages", sizes: []int{3, 1, 4, 1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getter := pagedGetter(tt.sizes...)
			result := NewExtractor(getter, DefaultConfig()).FetchAllPages(context.Background(), playersRequest)

			if result.Truncated {
				t.Fatalf("Truncated = true (%s: %v)", result.Reason, result.Cause)
			}
			if len(getter.requested) != len(tt.sizes) {
				t.Fatalf("requests = %v, want %d", getter.requested, len(tt.sizes))
			}
			for i, page := range getter.requested {
				if page != i+1 {
					t.Errorf("request %d asked for page %d, want %d", i, page, i+1)
				}
			}

			sum := 0
			for _, size := range tt.sizes {
				sum += size
			}
			if len(result.Records) != sum {
				t.Errorf("len(Records) = %d, want %d", len(result.Records), sum)
			}
			if result.Pages != len(tt.sizes) {
				t.Errorf("Pages = %d, want %d", result.Pages, len(tt.sizes))
			}
			if result.Cursor != (PageCursor{Current: len(tt.sizes), Total: len(tt.sizes)}) {
				t.Errorf("Cursor = %+v", result.Cursor)
			}
		})
	}
}

func TestFetchAllPages_PreservesOrder(t *testing.T) {
	result := NewExtractor(pagedGetter(2, 2, 1), DefaultConfig()).FetchAllPages(context.Background(), playersRequest)

	for i, raw := range result.Records {
		entry, err := apifootball.DecodePlayerEntry(raw)
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if entry.Player.ID.Get() != i+1 {
			t.Errorf("record %d has player id %d, want %d", i, entry.Player.ID.Get(), i+1)
		}
	}
}

func TestFetchAllPages_StartsAtPageOne(t *testing.T) {
	getter := pagedGetter(1, 1)
	req := playersRequest.WithPage(2)

	NewExtractor(getter, DefaultConfig()).FetchAllPages(context.Background(), req)

	if len(getter.requested) == 0 || getter.requested[0] != 1 {
		t.Errorf("requested = %v, want to start at page 1", getter.requested)
	}
}

func TestFetchAllPages_StatusTruncates(t *testing.T) {
	for failing := 2; failing <= 4; failing++ {
		t.Run("page "+strconv.Itoa(failing), func(t *testing.T) {
			getter := pagedGetter(5, 5, 5, 5)
			getter.responses[failing] = &client.Response{
				StatusCode: http.StatusInternalServerError,
				Body:       []byte(`{"message":"boom"}`),
			}

			result := NewExtractor(getter, DefaultConfig()).FetchAllPages(context.Background(), playersRequest)

			if !result.Truncated || result.Reason != ReasonStatus {
				t.Fatalf("Truncated=%v Reason=%q, want status truncation", result.Truncated, result.Reason)
			}
			if len(getter.requested) != failing {
				t.Errorf("requests = %v, want exactly %d (no retry, no skip-ahead)", getter.requested, failing)
			}
			if want := 5 * (failing - 1); len(result.Records) != want {
				t.Errorf("len(Records) = %d, want %d", len(result.Records), want)
			}

			var statusErr *client.StatusError
			if !errors.As(result.Cause, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
				t.Fatalf("Cause = %v, want *StatusError 500", result.Cause)
			}
			if string(statusErr.Body) != `{"message":"boom"}` {
				t.Errorf("StatusError body = %s", statusErr.Body)
			}
		})
	}
}

func TestFetchAllPages_FirstPageFailure(t *testing.T) {
	getter := pagedGetter(5, 5)
	getter.responses[1] = &client.Response{StatusCode: http.StatusForbidden, Body: []byte(`forbidden`)}

	result := NewExtractor(getter, DefaultConfig()).FetchAllPages(context.Background(), playersRequest)

	if !result.Truncated || len(result.Records) != 0 || result.Pages != 0 {
		t.Errorf("result = %+v, want empty truncated result", result)
	}
}

func TestFetchAllPages_TransportErrorTruncates(t *testing.T) {
	getter := pagedGetter(2, 2, 2)
	getter.errs[3] = &client.TransportError{Class: client.ErrorClassTimeout, Endpoint: "/players", Err: context.DeadlineExceeded}

	result := NewExtractor(getter, DefaultConfig()).FetchAllPages(context.Background(), playersRequest)

	if result.Reason != ReasonTransport {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonTransport)
	}
	if len(result.Records) != 4 {
		t.Errorf("len(Records) = %d, want 4", len(result.Records))
	}
}

func TestFetchAllPages_DecodeAndPagingFaults(t *testing.T) {
	tests := []struct {
		name        string
		page2       string
		reason      string
		wantRecords int
	}{
		{
			name:        "invalid json",
			page2:       `{"response": [`,
			reason:      ReasonDecode,
			wantRecords: 1,
		},
		{
			name:        "missing paging",
			page2:       `{"errors": [], "response": [{"player": {"id": 9}}]}`,
			reason:      ReasonPaging,
			wantRecords: 2,
		},
		{
			name:        "stalled paging",
			page2:       `{"errors": [], "paging": {"current": 1, "total": 3}, "response": [{"player": {"id": 9}}]}`,
			reason:      ReasonPaging,
			wantRecords: 2,
		},
		{
			name:        "application errors in 200",
			page2:       `{"errors": {"requests": "You have reached the request limit for the day"}, "paging": {"current": 2, "total": 3}, "response": []}`,
			reason:      ReasonUpstreamErrors,
			wantRecords: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getter := pagedGetter(1, 1, 1)
			getter.responses[2] = &client.Response{StatusCode: http.StatusOK, Body: []byte(tt.page2)}

			result := NewExtractor(getter, DefaultConfig()).FetchAllPages(context.Background(), playersRequest)

			if !result.Truncated || result.Reason != tt.reason {
				t.Fatalf("Truncated=%v Reason=%q, want %q (cause %v)", result.Truncated, result.Reason, tt.reason, result.Cause)
			}
			if len(result.Records) != tt.wantRecords {
				t.Errorf("len(Records) = %d, want %d", len(result.Records), tt.wantRecords)
			}
			if len(getter.requested) != 2 {
				t.Errorf("requests = %v, want 2", getter.requested)
			}
		})
	}
}

func TestFetchAllPages_MaxPages(t *testing.T) {
	getter := pagedGetter(1, 1, 1, 1, 1)

	result := NewExtractor(getter, Config{MaxPages: 2}).FetchAllPages(context.Background(), playersRequest)

	if result.Reason != ReasonMaxPages {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonMaxPages)
	}
	if len(getter.requested) != 2 || len(result.Records) != 2 {
		t.Errorf("requested %v, records %d, want 2 and 2", getter.requested, len(result.Records))
	}
}

func TestFetchAllPages_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	getter := pagedGetter(1, 1, 1)
	getter.onGet = func(page int) {
		if page == 2 {
			cancel()
		}
	}

	result := NewExtractor(getter, DefaultConfig()).FetchAllPages(ctx, playersRequest)

	if result.Reason != ReasonCanceled {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonCanceled)
	}
	if len(getter.requested) != 2 {
		t.Errorf("requests = %v, want 2", getter.requested)
	}
}

func TestFetchAllPages_EmptySeason(t *testing.T) {
	getter := &fakeGetter{responses: map[int]*client.Response{
		1: {StatusCode: http.StatusOK, Body: []byte(`{"errors": [], "results": 0, "paging": {"current": 1, "total": 0}, "response": []}`)},
	}}

	result := NewExtractor(getter, DefaultConfig()).FetchAllPages(context.Background(), playersRequest)

	if result.Truncated || len(result.Records) != 0 || result.Pages != 1 {
		t.Errorf("result = %+v, want complete empty result after one page", result)
	}
}

func TestFetchAllPages_AgainstMockServer(t *testing.T) {
	mock := testutil.NewMockAPIFootball(testutil.Players(1, 20), testutil.Players(21, 40), testutil.Players(41, 45))
	defer mock.Close()

	cfg := client.DefaultConfig("test-key")
	cfg.BaseURL = mock.URL()
	apiClient, err := client.New(cfg)
	if err != nil {
		t.Fatalf("client.New error = %v", err)
	}

	result := NewExtractor(apiClient, DefaultConfig()).FetchAllPages(context.Background(), playersRequest)

	if result.Truncated {
		t.Fatalf("Truncated (%s): %v", result.Reason, result.Cause)
	}
	if len(result.Records) != 45 {
		t.Errorf("len(Records) = %d, want 45", len(result.Records))
	}
	if got := mock.RequestedPages(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("RequestedPages = %v, want [1 2 3]", got)
	}
	if mock.LastHeader().Get("x-rapidapi-key") != "test-key" {
		t.Error("credential header not sent")
	}
}

func TestFetchAllPages_MockServerFailure(t *testing.T) {
	mock := testutil.NewMockAPIFootball(testutil.Players(1, 20), testutil.Players(21, 40), testutil.Players(41, 45))
	defer mock.Close()
	mock.SetPageResponse(2, testutil.MockResponse{StatusCode: http.StatusBadGateway, Body: "bad gateway"})

	cfg := client.DefaultConfig("test-key")
	cfg.BaseURL = mock.URL()
	apiClient, err := client.New(cfg)
	if err != nil {
		t.Fatalf("client.New error = %v", err)
	}

	result := NewExtractor(apiClient, DefaultConfig()).FetchAllPages(context.Background(), playersRequest)

	if !result.Truncated || len(result.Records) != 20 {
		t.Errorf("Truncated=%v records=%d, want truncated with 20", result.Truncated, len(result.Records))
	}
	if got := mock.RequestedPages(); len(got) != 2 {
		t.Errorf("RequestedPages = %v, want 2 requests", got)
	}
}
