package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// KeyPrefix namespaces every key written by this package.
const KeyPrefix = "apifootball"

// PageKey identifies one page of one endpoint query.
type PageKey struct {
	// Endpoint is the API path (e.g. "/players")
	Endpoint string

	// Query holds the request parameters, page included
	Query url.Values
}

// String generates a deterministic key.
// Format: apifootball:endpoint:param1=val1:param2=val2
//
// Example:
//
//	apifootball:players:league=135:page=2:season=2023:team=496
func (k PageKey) String() string {
	parts := []string{KeyPrefix}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	if len(k.Query) > 0 {
		keys := make([]string, 0, len(k.Query))
		for key := range k.Query {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, strings.Join(k.Query[key], ",")))
		}
	}

	return strings.Join(parts, ":")
}
