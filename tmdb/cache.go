package tmdb

import (
	"container/list"
	"sync"
	"time"
)

// responseCache is a thread-safe LRU of response bodies keyed by request URL
type responseCache struct {
	size      int
	ttl       time.Duration
	evictList *list.List
	items     map[string]*list.Element
	mu        sync.Mutex
	now       func() time.Time
}

type cacheEntry struct {
	key     string
	body    []byte
	expires time.Time
}

func newResponseCache(size int, ttl time.Duration) *responseCache {
	return &responseCache{
		size:      size,
		ttl:       ttl,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		now:       time.Now,
	}
}

// Get returns the body stored for key if it has not expired
func (c *responseCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.items[key]
	if !ok {
		return nil, false
	}

	ent := node.Value.(*cacheEntry)
	if c.now().After(ent.expires) {
		c.removeElement(node)
		return nil, false
	}

	c.evictList.MoveToFront(node)
	return ent.body, true
}

// Put stores body under key, evicting the least recently used entry when full
func (c *responseCache) Put(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if node, ok := c.items[key]; ok {
		c.evictList.MoveToFront(node)
		ent := node.Value.(*cacheEntry)
		ent.body = body
		ent.expires = expires
		return
	}

	node := c.evictList.PushFront(&cacheEntry{key: key, body: body, expires: expires})
	c.items[key] = node

	if c.evictList.Len() > c.size {
		if oldest := c.evictList.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *responseCache) removeElement(node *list.Element) {
	c.evictList.Remove(node)
	delete(c.items, node.Value.(*cacheEntry).key)
}

// Len returns the number of items in the cache
func (c *responseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}
