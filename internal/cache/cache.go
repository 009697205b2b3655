package cache

import "sync"

// Cache is a thread-safe LRU cache holding at most limit entries.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*lruNode[K, V]
	order   lruList[K, V]
	limit   int
	stats   Stats
}

// Stats counts cache activity.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// New creates a cache holding at most limit entries. A limit of 0 or less
// means unlimited.
func New[K comparable, V any](limit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*lruNode[K, V]),
		limit:   limit,
	}
}

// Get returns the value for key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	c.order.MoveToFront(node)
	return node.value, true
}

// Load returns the value for key, calling load on a miss. Failed loads are
// not cached. load runs under the cache lock, so concurrent callers never
// load the same key twice.
func (c *Cache[K, V]) Load(key K, load func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		c.stats.Hits++
		c.order.MoveToFront(node)
		return node.value, nil
	}
	c.stats.Misses++
	v, err := load()
	if err != nil {
		return v, err
	}
	c.put(key, v)
	return v, nil
}

// Set stores value under key, evicting the least recently used entry when
// the cache is full.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		node.value = value
		c.order.MoveToFront(node)
		return
	}
	c.put(key, value)
}

// put inserts a new key. Caller must hold c.mu.
func (c *Cache[K, V]) put(key K, value V) {
	c.entries[key] = c.order.PushFront(key, value)
	for c.limit > 0 && c.order.len > c.limit {
		old := c.order.RemoveOldest()
		delete(c.entries, old.key)
		c.stats.Evictions++
	}
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit, miss and eviction counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
