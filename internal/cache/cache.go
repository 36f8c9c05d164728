// Package cache provides thread-safe generic caching functionality and a rendered-annotation cache.
package cache

import "sync"

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

func (c *Cache[K, V]) SetTo(items map[K]V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
}

// Rendered annotation bodies, keyed by text hash and syntax theme. Rendering
// depends on the active syntax theme, so both go into the key.
var renderedMarkdownCache = NewCache[string, []byte]()

func GetRenderedMarkdown(textHash, syntaxTheme string) ([]byte, bool) {
	key := textHash + ":" + syntaxTheme
	return renderedMarkdownCache.Get(key)
}

func SetRenderedMarkdown(textHash, syntaxTheme string, html []byte) {
	key := textHash + ":" + syntaxTheme
	renderedMarkdownCache.Set(key, html)
}

func ClearRenderedMarkdownCache() {
	renderedMarkdownCache.Clear()
}
