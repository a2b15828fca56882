package cache

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/varoOP/animewatch/internal/domain"
)

// DefaultTTL is how long a catalog response stays fresh
const DefaultTTL = 30 * time.Minute

// Entry is a cached payload and the time it was fetched
type Entry struct {
	Key       string
	Payload   json.RawMessage
	FetchedAt time.Time
}

// Valid reports whether the entry is still fresh at now
func (e *Entry) Valid(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) < ttl
}

// Cache is the in-memory response cache.
// Expired entries are never swept; they are ignored on read and replaced on the next Put.
type Cache struct {
	log     zerolog.Logger
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]*Entry
	hits    atomic.Int64
	misses  atomic.Int64
}

type Option func(*Cache)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an empty cache. A ttl <= 0 selects DefaultTTL.
func New(log zerolog.Logger, ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Cache{
		log:     log.With().Str("module", "cache").Logger(),
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*Entry),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var _ domain.ResponseCache = (*Cache)(nil)

// Get returns a copy of the payload stored under key if it is still fresh
func (c *Cache) Get(_ context.Context, key string) (json.RawMessage, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !e.Valid(c.now(), c.ttl) {
		c.misses.Add(1)
		c.log.Trace().Str("key", key).Msg("cache miss")
		return nil, false
	}

	c.hits.Add(1)
	c.log.Trace().Str("key", key).Msg("cache hit")
	return append(json.RawMessage(nil), e.Payload...), true
}

// Put stores payload under key, replacing whatever was there
func (c *Cache) Put(_ context.Context, key string, payload json.RawMessage) {
	e := &Entry{
		Key:       key,
		Payload:   append(json.RawMessage(nil), payload...),
		FetchedAt: c.now(),
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// Clear drops every entry
func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]*Entry)
	c.mu.Unlock()

	c.log.Debug().Msg("cache cleared")
	return nil
}

// Stats reports the number of stored entries, expired ones included
func (c *Cache) Stats(_ context.Context) (domain.CacheStats, error) {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()

	return domain.CacheStats{
		Entries: int64(n),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}, nil
}
