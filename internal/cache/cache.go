// Package cache holds short-lived response payloads keyed by route and filter.
// It only serves the chat read paths, where polling clients repeat identical
// reads well inside the freshness window.
package cache

import (
	"context"
	"strconv"
	"time"
)

// DefaultTTL is the freshness window for cached responses.
const DefaultTTL = 30 * time.Second

// Store is a TTL'd byte cache. Writes overwrite; reads of stale entries
// report a miss. Implementations never surface errors: a broken cache
// degrades to a miss, not a failed request.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, data []byte)
}

// Key builds the composite cache key for a route and its primary filter.
func Key(route string, id int64) string {
	return route + ":" + strconv.FormatInt(id, 10)
}
