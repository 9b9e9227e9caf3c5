package cache

import (
	"sync"
	"time"

	"cellq/internal/sheet"
)

// Entry is a cached workbook together with the file metadata it was
// loaded from. Callers compare ModTime and Size against a fresh stat
// to decide whether the entry is still current.
type Entry struct {
	Workbook *sheet.Workbook
	ModTime  time.Time
	Size     int64
}

// node is an element of the recency ring. The ring runs from most
// recently used (root.next) to least recently used (root.prev).
type node struct {
	key        string
	value      *Entry
	prev, next *node
}

// LRU is a thread-safe least-recently-used cache of loaded workbooks,
// keyed by file path.
type LRU struct {
	mu       sync.RWMutex
	capacity int
	items    map[string]*node
	root     node // sentinel joining both ends of the ring
}

// New creates a new LRU cache with the given capacity.
// If capacity is less than 1, it defaults to 1.
func New(capacity int) *LRU {
	if capacity < 1 {
		capacity = 1
	}
	c := &LRU{
		capacity: capacity,
		items:    make(map[string]*node, capacity),
	}
	c.root.prev = &c.root
	c.root.next = &c.root
	return c
}

// Get retrieves an entry by path, returning (entry, true) if found.
// This operation marks the item as recently used.
func (c *LRU) Get(key string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.touch(n)
	return n.value, true
}

// Set adds or updates an entry. An existing key keeps its node and is
// marked recently used. A new key that pushes the cache over capacity
// evicts the least recently used entry.
func (c *LRU) Set(key string, value *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.items[key]; ok {
		n.value = value
		c.touch(n)
		return
	}

	n := &node{key: key, value: value}
	c.items[key] = n
	c.link(n)

	if len(c.items) > c.capacity {
		c.evict()
	}
}

// Invalidate drops an entry, if present. Used after a file is written
// so readers do not see a stale workbook.
func (c *LRU) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.items[key]; ok {
		delete(c.items, key)
		c.unlink(n)
	}
}

// Len returns the current number of items in the cache.
func (c *LRU) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes all items from the cache.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*node, c.capacity)
	c.root.prev = &c.root
	c.root.next = &c.root
}

// link inserts a node at the recent end of the ring.
func (c *LRU) link(n *node) {
	n.prev = &c.root
	n.next = c.root.next
	n.prev.next = n
	n.next.prev = n
}

// unlink removes a node from the ring. The sentinel means no end
// checks are needed.
func (c *LRU) unlink(n *node) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
}

// touch marks a node most recently used.
func (c *LRU) touch(n *node) {
	if c.root.next == n {
		return
	}
	c.unlink(n)
	c.link(n)
}

// evict drops the least recently used entry.
func (c *LRU) evict() {
	lru := c.root.prev
	if lru == &c.root {
		return
	}
	delete(c.items, lru.key)
	c.unlink(lru)
}
