// Package ai provides embedding client wrappers used by the application.
package ai

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

// embedCacheClient wraps an Embedder and caches vectors by model and text hash.
// It is safe for concurrent use. Eviction is least recently used.
type embedCacheClient struct {
	base     domain.Embedder
	model    string
	capacity int

	mu    sync.Mutex
	ll    *list.List
	items map[string]*list.Element
}

type cacheEntry struct {
	key string
	vec domain.EmbeddingVector
}

// NewEmbedCache wraps base with an in-memory cache of given capacity (number of entries).
// If capacity <= 0, base is returned unmodified.
func NewEmbedCache(base domain.Embedder, model string, capacity int) domain.Embedder {
	if capacity <= 0 || base == nil {
		return base
	}
	return &embedCacheClient{
		base:     base,
		model:    model,
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

func (c *embedCacheClient) Embed(ctx domain.Context, text string) (domain.EmbeddingVector, error) {
	k := keyFor(c.model, text)
	if v, ok := c.get(k); ok {
		observability.ObserveCacheLookup("memory", true)
		return v, nil
	}
	observability.ObserveCacheLookup("memory", false)
	v, err := c.base.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.put(k, v)
	return v, nil
}

func (c *embedCacheClient) get(k string) (domain.EmbeddingVector, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[k]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*cacheEntry).vec, true
}

func (c *embedCacheClient) put(k string, vec domain.EmbeddingVector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[k]; ok {
		el.Value.(*cacheEntry).vec = vec
		c.ll.MoveToFront(el)
		return
	}
	c.items[k] = c.ll.PushFront(&cacheEntry{key: k, vec: vec})
	if c.ll.Len() > c.capacity {
		old := c.ll.Back()
		c.ll.Remove(old)
		delete(c.items, old.Value.(*cacheEntry).key)
	}
}

func (c *embedCacheClient) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// keyFor hashes the model and the exact text sent to the provider, so that
// switching models never serves a vector of the wrong dimension and texts
// differing only in surrounding whitespace never share a vector.
func keyFor(model, text string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
