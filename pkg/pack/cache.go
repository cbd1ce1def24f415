package pack

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"mercator-hq/ponyini/pkg/telemetry/metrics"
)

// cacheEntry is what a previous run produced from identical input bytes.
type cacheEntry struct {
	output   []byte
	pony     string
	warnings int
	errors   int
	skipped  int
}

// Cache remembers pipeline outputs by stage, path and source hash so an
// unchanged file is neither parsed nor rewritten on the next run.
type Cache struct {
	lru     *lru.Cache[string, cacheEntry]
	metrics *metrics.Collector
}

// NewCache creates a cache holding at most size entries.
func NewCache(size int, collector *metrics.Collector) (*Cache, error) {
	c := &Cache{metrics: collector}
	l, err := lru.NewWithEvict(size, func(string, cacheEntry) {
		c.metrics.RecordCacheEviction()
	})
	if err != nil {
		return nil, err
	}
	c.lru = l
	return c, nil
}

func cacheKey(stage, path, hash string) string {
	return stage + "\x00" + path + "\x00" + hash
}

func (c *Cache) get(key string) (cacheEntry, bool) {
	if c == nil {
		return cacheEntry{}, false
	}
	e, ok := c.lru.Get(key)
	if ok {
		c.metrics.RecordCacheHit()
	} else {
		c.metrics.RecordCacheMiss()
	}
	return e, ok
}

func (c *Cache) add(key string, e cacheEntry) {
	if c == nil {
		return
	}
	c.lru.Add(key, e)
	c.metrics.UpdateCacheSize(c.lru.Len())
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
	c.metrics.UpdateCacheSize(0)
}
