// Package cache is the explicit result-cache boundary the web layer reads
// through. It is size-bound and TTL-bound; entries are immutable
// *ScrapeResult pointers, so replacing an entry is a pointer swap and
// concurrent readers never observe a torn value.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hputnam/oddsboard/internal/pkg/models"
)

type ResultCache struct {
	lru *expirable.LRU[string, *models.ScrapeResult]
}

// New builds a cache holding at most size results, each for at most ttl.
func New(size int, ttl time.Duration) *ResultCache {
	return &ResultCache{
		lru: expirable.NewLRU[string, *models.ScrapeResult](size, nil, ttl),
	}
}

// Get returns the cached result for a storage.ResultKey-derived key.
func (c *ResultCache) Get(key string) (*models.ScrapeResult, bool) {
	return c.lru.Get(key)
}

// Put stores a result. Callers must treat the value as frozen once inserted.
func (c *ResultCache) Put(key string, res *models.ScrapeResult) {
	c.lru.Add(key, res)
}

// Len reports the current number of cached results.
func (c *ResultCache) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *ResultCache) Purge() {
	c.lru.Purge()
}
