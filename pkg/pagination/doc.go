// Package pagination walks the pages of an api-sports endpoint and
// accumulates every page's response array into one ordered sequence.
//
// api-sports reports its own page counters in every body
// (paging.current / paging.total), so the number of pages is only known
// after the first response. Pages are fetched strictly one after another.
//
// Example usage:
//
//	extractor := pagination.NewExtractor(apiClient, pagination.DefaultConfig())
//	result := extractor.FetchAllPages(ctx, pagination.Request{
//		Endpoint: apifootball.PlayersEndpoint,
//		League:   "135",
//		Season:   "2023",
//		Team:     "496",
//	})
//	if result.Truncated {
//		// result.Records holds the pages that were fetched before result.Cause
//	}
//
// The extractor:
//   - Always starts at page 1
//   - Follows paging.current + 1 until current == total
//   - Stops on the first non-2xx status, transport error or malformed page
//     and returns what it has accumulated (partial-failure truncation)
//   - Never retries
package pagination
