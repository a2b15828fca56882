package domain

import (
	"context"
	"encoding/json"
)

// ResponseCache stores decoded catalog payloads keyed by request signature.
// Implementations never fail toward the caller: a broken backend behaves like a miss.
type ResponseCache interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool)
	Put(ctx context.Context, key string, payload json.RawMessage)
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (CacheStats, error)
}

// CacheStats holds cache counters for the current process
type CacheStats struct {
	Entries int64 `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}
