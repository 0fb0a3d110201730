package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is used when Set is given a non-positive TTL
const DefaultTTL = 5 * time.Minute

// MemoryCache is a bounded in-process cache with per-entry expiry
type MemoryCache struct {
	mu         sync.Mutex
	items      map[string]cacheItem
	maxEntries int
	stats      CacheStats
	now        func() time.Time
	stopCh     chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

type cacheItem struct {
	value  []byte
	expiry time.Time
}

// NewMemoryCache creates a cache holding at most maxEntries values
// (unbounded when maxEntries <= 0) and sweeping expired entries every
// cleanupInterval (never when cleanupInterval <= 0)
func NewMemoryCache(maxEntries int, cleanupInterval time.Duration) *MemoryCache {
	mc := &MemoryCache{
		items:      make(map[string]cacheItem),
		maxEntries: maxEntries,
		now:        time.Now,
		stopCh:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		mc.wg.Add(1)
		go mc.cleanupLoop(cleanupInterval)
	}
	return mc
}

// Get retrieves a value from the cache
func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	item, ok := mc.items[key]
	if !ok || !mc.now().Before(item.expiry) {
		if ok {
			delete(mc.items, key)
			mc.stats.Evictions++
		}
		mc.stats.Misses++
		return nil, false
	}
	mc.stats.Hits++
	return item.value, true
}

// Set stores a value in the cache with a TTL
func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.items[key]; !exists && mc.maxEntries > 0 && len(mc.items) >= mc.maxEntries {
		mc.evictOneLocked()
	}
	mc.items[key] = cacheItem{value: value, expiry: mc.now().Add(ttl)}
	mc.stats.Sets++
	return nil
}

// Delete removes a value from the cache
func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	delete(mc.items, key)
	mc.mu.Unlock()
	return nil
}

// Clear removes all values from the cache
func (mc *MemoryCache) Clear(ctx context.Context) error {
	mc.mu.Lock()
	mc.items = make(map[string]cacheItem)
	mc.mu.Unlock()
	return nil
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() CacheStats {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	stats := mc.stats
	stats.Entries = len(mc.items)
	return stats
}

// Stop gracefully shuts down the cleanup goroutine
func (mc *MemoryCache) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopCh) })
	mc.wg.Wait()
}

func (mc *MemoryCache) cleanupLoop(interval time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.removeExpired()
		case <-mc.stopCh:
			return
		}
	}
}

// removeExpired removes all expired items
func (mc *MemoryCache) removeExpired() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	now := mc.now()
	for key, item := range mc.items {
		if !now.Before(item.expiry) {
			delete(mc.items, key)
			mc.stats.Evictions++
		}
	}
}

// evictOneLocked drops the entry closest to expiry. Caller holds mc.mu.
func (mc *MemoryCache) evictOneLocked() {
	var victim string
	var soonest time.Time
	for key, item := range mc.items {
		if victim == "" || item.expiry.Before(soonest) {
			victim, soonest = key, item.expiry
		}
	}
	if victim != "" {
		delete(mc.items, victim)
		mc.stats.Evictions++
	}
}
