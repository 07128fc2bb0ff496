// Package querycache is the client-side request cache shared by every view.
// Entries are keyed by request and live until explicitly invalidated.
package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultSize bounds the number of cached responses.
const DefaultSize = 256

const (
	KeyDeals = "deals"
)

// KeyMemo is the key of a deal's current memo.
func KeyMemo(dealID int64) string { return fmt.Sprintf("memo/%d", dealID) }

// KeyMemoHistory is the key of a deal's memo version list.
func KeyMemoHistory(dealID int64) string { return fmt.Sprintf("memo_history/%d", dealID) }

// KeyActivities is the key of a deal's activity log.
func KeyActivities(dealID int64) string { return fmt.Sprintf("activities/%d", dealID) }

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used for cache tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// Cache is safe for concurrent use. Concurrent fetches of one key share a
// single call.
type Cache struct {
	entries *lru.Cache[string, any]
	group   singleflight.Group
	logger  *slog.Logger

	mu          sync.Mutex
	generations map[string]uint64
	inflight    map[string]int
}

// New creates a cache holding at most size entries.
func New(size int, opts ...Option) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}
	c := &Cache{entries: entries, logger: slog.Default(), generations: make(map[string]uint64), inflight: make(map[string]int)}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch returns the cached value for key, or runs fn and caches its result.
// fn keeps running after ctx is cancelled so a late response still
// populates the key; only the caller stops waiting. Errors are not cached,
// and neither is a response for a key invalidated while it was in flight.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := Get[T](c, key); ok {
		return v, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		gen := c.begin(key)
		defer c.end(key)
		v, err := fn(detached)
		if err != nil {
			return nil, err
		}
		c.store(key, gen, v)
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("query cache key %q holds %T", key, res.Val)
		}
		return v, nil
	}
}

// Get returns the cached value for key without fetching.
func Get[T any](c *Cache, key string) (T, bool) {
	var zero T
	raw, ok := c.entries.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// store caches v unless key was invalidated after the fetch started.
func (c *Cache) store(key string, gen uint64, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[key] != gen {
		c.logger.Debug("Query cache dropped stale response", slog.String("key", key))
		return
	}
	c.entries.Add(key, v)
	c.logger.Debug("Query cache filled", slog.String("key", key))
}

// begin marks key as being fetched and returns its current generation.
func (c *Cache) begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[key]++
	return c.generations[key]
}

func (c *Cache) end(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[key]--; c.inflight[key] <= 0 {
		delete(c.inflight, key)
	}
}

// Invalidate drops the given keys. A fetch already in flight for one of them
// is detached and its result discarded, so the next Fetch issues a new request.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		c.invalidateLocked(key)
	}
}

// InvalidatePrefix drops every key starting with prefix, e.g. "memo/",
// whether it is cached or still being fetched.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	matched := make(map[string]struct{})
	for _, key := range c.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			matched[key] = struct{}{}
		}
	}
	for key := range c.inflight {
		if strings.HasPrefix(key, prefix) {
			matched[key] = struct{}{}
		}
	}
	for key := range matched {
		c.invalidateLocked(key)
	}
}

// invalidateLocked must be called with mu held. Forgetting the key under the
// same lock keeps a concurrent Fetch from joining the call being discarded.
func (c *Cache) invalidateLocked(key string) {
	c.generations[key]++
	c.entries.Remove(key)
	c.group.Forget(key)
	c.logger.Debug("Query cache invalidated", slog.String("key", key))
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}
