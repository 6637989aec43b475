// Package cache provides the stores behind the platform API client's query cache.
//
// A Store keeps raw response bodies under string keys with a per-entry TTL and
// supports invalidating every key that shares a prefix, which is how mutations
// drop stale reads (a renewal invalidates everything under "apps:").
//
// Two implementations are included:
//
//   - LRU: in-process, capacity-bounded, least recently used entries are evicted
//     first and expired entries are dropped lazily on access.
//   - RedisStore: shared across processes, backed by github.com/redis/go-redis/v9.
//
// Reads can be forced to skip the cache for a single call with WithBypass:
//
//	ctx = cache.WithBypass(ctx)
//	apps, err := client.GetUserApps(ctx, 1, 50) // always hits the API
//
// Bypassed reads still refresh the stored value.
package cache
