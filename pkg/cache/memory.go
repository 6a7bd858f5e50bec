package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// cacheItem is the payload stored per key; elem links it into the
// recency list maintained by MemoryCache.
type cacheItem struct {
	key       string
	value     []byte
	expiresAt time.Time
	size      int64
	elem      *list.Element
}

func (i *cacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

func (i *cacheItem) remainingTTL(now time.Time) time.Duration {
	if i.expiresAt.IsZero() {
		return -1
	}
	if d := i.expiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// MemoryCache is an in-memory Cache backed by a map plus an explicit
// recency list, giving O(1) least-recently-used eviction instead of a
// linear scan for the oldest entry.
type MemoryCache struct {
	mu         sync.Mutex
	items      map[string]*cacheItem
	recency    *list.List // front = most recently touched
	defaultTTL time.Duration
	maxEntries int

	hits   atomic.Int64
	misses atomic.Int64

	closed atomic.Bool
	stopCh chan struct{}
	done   sync.WaitGroup
}

// NewMemoryCache builds a MemoryCache from opts, using DefaultOptions when
// opts is nil. An unset MaxEntries becomes 100000 and an unset
// CleanupInterval one minute; an unset DefaultTTL stays zero, so entries set
// without a TTL never expire.
func NewMemoryCache(opts *Options) *MemoryCache {
	if opts == nil {
		opts = DefaultOptions()
	}

	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 100000
	}

	sweep := opts.CleanupInterval
	if sweep <= 0 {
		sweep = time.Minute
	}

	c := &MemoryCache{
		items:      make(map[string]*cacheItem),
		recency:    list.New(),
		defaultTTL: opts.DefaultTTL,
		maxEntries: maxEntries,
		stopCh:     make(chan struct{}),
	}

	c.done.Add(1)
	go c.sweepLoop(sweep)

	return c
}

// touch moves item to the front of the recency list, marking it
// most-recently-used. Caller holds c.mu.
func (c *MemoryCache) touch(item *cacheItem) {
	c.recency.MoveToFront(item.elem)
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	c.mu.Lock()
	item, ok := c.items[key]
	if !ok || item.expired(time.Now()) {
		c.mu.Unlock()
		c.misses.Add(1)
		return nil, ErrKeyNotFound
	}
	c.touch(item)
	value := append([]byte(nil), item.value...)
	c.mu.Unlock()

	c.hits.Add(1)
	return value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.items[key]; ok {
		existing.value = append([]byte(nil), value...)
		existing.expiresAt = expiresAt
		existing.size = int64(len(value))
		c.touch(existing)
		return nil
	}

	for len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	item := &cacheItem{
		key:       key,
		value:     append([]byte(nil), value...),
		expiresAt: expiresAt,
		size:      int64(len(value)),
	}
	item.elem = c.recency.PushFront(item)
	c.items[key] = item
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.mu.Lock()
	c.removeLocked(key)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) removeLocked(key string) {
	if item, ok := c.items[key]; ok {
		c.recency.Remove(item.elem)
		delete(c.items, key)
	}
}

// evictOldest removes the least-recently-touched entry. Caller holds c.mu.
func (c *MemoryCache) evictOldest() {
	back := c.recency.Back()
	if back == nil {
		return
	}
	item := back.Value.(*cacheItem)
	c.recency.Remove(back)
	delete(c.items, item.key)
}

func (c *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	if c.closed.Load() {
		return false, ErrCacheClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[key]
	return ok && !item.expired(time.Now()), nil
}

func (c *MemoryCache) GetWithTTL(_ context.Context, key string) ([]byte, time.Duration, error) {
	if c.closed.Load() {
		return nil, 0, ErrCacheClosed
	}

	c.mu.Lock()
	item, ok := c.items[key]
	now := time.Now()
	if !ok || item.expired(now) {
		c.mu.Unlock()
		c.misses.Add(1)
		return nil, 0, ErrKeyNotFound
	}
	c.touch(item)
	value := append([]byte(nil), item.value...)
	ttl := item.remainingTTL(now)
	c.mu.Unlock()

	c.hits.Add(1)
	return value, ttl, nil
}

func (c *MemoryCache) MGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}
	result := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if v, err := c.Get(ctx, key); err == nil {
			result[key] = v
		}
	}
	return result, nil
}

func (c *MemoryCache) MSet(ctx context.Context, entries map[string][]byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	for key, value := range entries {
		if err := c.Set(ctx, key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

func (c *MemoryCache) MDelete(_ context.Context, keys []string) (int64, error) {
	if c.closed.Load() {
		return 0, ErrCacheClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int64
	for _, key := range keys {
		if _, ok := c.items[key]; ok {
			c.removeLocked(key)
			count++
		}
	}
	return count, nil
}

func (c *MemoryCache) Keys(_ context.Context, pattern string) ([]string, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var keys []string
	for key, item := range c.items {
		if !item.expired(now) && matchPattern(pattern, key) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (c *MemoryCache) DeleteByPattern(_ context.Context, pattern string) (int64, error) {
	if c.closed.Load() {
		return 0, ErrCacheClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int64
	for key := range c.items {
		if matchPattern(pattern, key) {
			c.removeLocked(key)
			count++
		}
	}
	return count, nil
}

func (c *MemoryCache) Stats(_ context.Context) (*Stats, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stats := &Stats{
		TotalKeys:    int64(len(c.items)),
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		KeysByPrefix: make(map[string]int64),
		Backend:      BackendMemory,
	}

	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}

	now := time.Now()
	for key, item := range c.items {
		if item.expired(now) {
			continue
		}
		stats.MemoryBytes += item.size
		stats.KeysByPrefix[keyPrefix(key)]++
	}

	return stats, nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.mu.Lock()
	c.items = make(map[string]*cacheItem)
	c.recency = list.New()
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	close(c.stopCh)
	c.done.Wait()

	c.mu.Lock()
	c.items = nil
	c.recency = nil
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) sweepLoop(interval time.Duration) {
	defer c.done.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.sweepExpired()
		}
	}
}

func (c *MemoryCache) sweepExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if item.expired(now) {
			c.removeLocked(key)
		}
	}
}

// matchPattern reports whether key matches a "*"-wildcard glob: a bare "*",
// an exact string, or one wildcard splitting a required prefix and suffix.
func matchPattern(pattern, key string) bool {
	if pattern == "*" {
		return true
	}
	star := strings.IndexByte(pattern, '*')
	if star == -1 {
		return pattern == key
	}
	prefix, suffix := pattern[:star], pattern[star+1:]
	return len(key) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(key, prefix) && strings.HasSuffix(key, suffix)
}

// keyPrefix returns the ":"-delimited namespace of key, or "other" for a
// bare key with no namespace separator.
func keyPrefix(key string) string {
	if idx := strings.IndexByte(key, ':'); idx > 0 {
		return key[:idx]
	}
	return "other"
}
