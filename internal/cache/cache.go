package cache

import "sync"

// Page paths whose cached data every product mutation invalidates.
const (
	HomePath     = "/"
	ProductsPath = "/products"
)

// PageCache holds computed page data keyed by path. Mutating workflows call
// Invalidate explicitly rather than relying on any framework-global cache.
type PageCache struct {
	mu      sync.RWMutex
	entries map[string]any
}

func NewPageCache() *PageCache {
	return &PageCache{entries: make(map[string]any)}
}

func (c *PageCache) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[path]
	return v, ok
}

func (c *PageCache) Put(path string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = value
}

func (c *PageCache) Invalidate(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, path := range paths {
		delete(c.entries, path)
	}
}
