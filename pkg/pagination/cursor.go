package pagination

import (
	"errors"
	"fmt"
)

var (
	// ErrPagingCounters is returned when paging.current or paging.total is missing or negative.
	ErrPagingCounters = errors.New("invalid paging counters")

	// ErrPagingStalled is returned when the upstream reports a page that does not move the cursor forward.
	ErrPagingStalled = errors.New("paging did not advance")
)

// PageCursor tracks extraction progress. The zero value is the state before
// the first page.
type PageCursor struct {
	Current int
	Total   int
}

// Done reports whether every page has been consumed.
func (c PageCursor) Done() bool {
	return c.Current >= c.Total
}

// Next is the page to request after the current one.
func (c PageCursor) Next() int {
	return c.Current + 1
}

// Advance applies the counters reported with a fetched page. A reported
// current beyond total (api-sports sends current 1, total 0 for an empty
// result) is clamped so Current never exceeds Total.
func (c *PageCursor) Advance(current, total int) error {
	if current < 1 || total < 0 {
		return fmt.Errorf("%w: current=%d total=%d", ErrPagingCounters, current, total)
	}
	if current <= c.Current {
		return fmt.Errorf("%w: at page %d, upstream reported %d", ErrPagingStalled, c.Current, current)
	}

	if current > total {
		current = total
	}
	c.Current = current
	c.Total = total
	return nil
}
