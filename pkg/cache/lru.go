package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"
)

type lruEntry struct {
	key       string
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// LRU is a thread-safe in-memory Store.
// When the cache reaches its capacity, the least recently used entry is evicted.
type LRU struct {
	capacity int
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
	now      func() time.Time
	onEvict  func(key string, value []byte)
}

// LRUOption configures an LRU store.
type LRUOption func(*LRU)

// WithNow overrides the time source used for expiry checks.
func WithNow(now func() time.Time) LRUOption {
	return func(c *LRU) {
		if now != nil {
			c.now = now
		}
	}
}

// WithEvictCallback registers fn to be called for every evicted or removed entry.
func WithEvictCallback(fn func(key string, value []byte)) LRUOption {
	return func(c *LRU) {
		c.onEvict = fn
	}
}

// NewLRU creates an LRU store holding at most capacity entries.
// Panics if capacity is not positive.
func NewLRU(capacity int, opts ...LRUOption) *LRU {
	if capacity <= 0 {
		panic("cache: LRU capacity must be positive")
	}
	c := &LRU{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key and marks it as recently used.
func (c *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}

	entry := elem.Value.(*lruEntry)
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.removeElement(elem)
		return nil, false, nil
	}

	c.eviction.MoveToFront(elem)
	return entry.value, true, nil
}

// Set adds or replaces the value for key.
func (c *LRU) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		entry := elem.Value.(*lruEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		return nil
	}

	elem := c.eviction.PushFront(&lruEntry{key: key, value: value, expiresAt: expiresAt})
	c.items[key] = elem

	if c.eviction.Len() > c.capacity {
		if oldest := c.eviction.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
	return nil
}

// DeletePrefix removes every entry whose key starts with prefix.
func (c *LRU) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, elem := range c.items {
		if strings.HasPrefix(key, prefix) {
			c.removeElement(elem)
		}
	}
	return nil
}

// Len returns the number of entries, including expired ones not yet collected.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// Clear removes all entries.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.onEvict != nil {
		for _, elem := range c.items {
			entry := elem.Value.(*lruEntry)
			c.onEvict(entry.key, entry.value)
		}
	}
	c.items = make(map[string]*list.Element)
	c.eviction.Init()
}

// Must be called with lock held.
func (c *LRU) removeElement(elem *list.Element) {
	c.eviction.Remove(elem)
	entry := elem.Value.(*lruEntry)
	delete(c.items, entry.key)

	if c.onEvict != nil {
		c.onEvict(entry.key, entry.value)
	}
}
