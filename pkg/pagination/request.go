package pagination

import (
	"net/url"
	"strconv"
)

// Request is the immutable description of one paged query. The extractor
// derives each page's request with WithPage instead of mutating shared state.
type Request struct {
	Endpoint string
	League   string
	Season   string
	Team     string
	Page     int
}

// WithPage returns a copy of r for the given page.
func (r Request) WithPage(page int) Request {
	r.Page = page
	return r
}

// Query encodes the request parameters. Empty filters are omitted.
func (r Request) Query() url.Values {
	q := url.Values{}
	if r.League != "" {
		q.Set("league", r.League)
	}
	if r.Season != "" {
		q.Set("season", r.Season)
	}
	if r.Team != "" {
		q.Set("team", r.Team)
	}
	if r.Page > 0 {
		q.Set("page", strconv.Itoa(r.Page))
	}
	return q
}
