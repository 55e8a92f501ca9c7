// Package cache stores successful api-sports page bodies in Redis.
//
// The players endpoint is quota-limited per day, and a season's squad data
// changes slowly, so re-running an extraction for the same league, season
// and team within the TTL is served from Redis instead of spending quota.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	manager := cache.NewManager(redisClient)
//
//	key := cache.PageKey{
//		Endpoint: "/players",
//		Query:    url.Values{"team": {"496"}, "season": {"2023"}, "page": {"1"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fetch from the API, then
//		_ = manager.Set(ctx, key, cache.NewEntry(body, http.StatusOK, time.Hour))
//	}
//
// # Metrics
//
//   - apifootball_cache_hits_total
//   - apifootball_cache_misses_total
//   - apifootball_cache_errors_total{operation}
//
// Only 2xx bodies are cached; failures must always reach the upstream again.
package cache
