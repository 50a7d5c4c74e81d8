// internal/storage/memory.go
package storage

import (
	"context"
	"sync"
	"time"

	"knowyourcompany/internal/models"
)

// MemoryStore is the in-process store backend used when Postgres is not
// configured. Development and test use; a restart loses everything.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*models.Insight
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]*models.Insight)}
}

func (s *MemoryStore) Get(ctx context.Context, canonicalKey string) (*models.Insight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ins, ok := s.items[canonicalKey]
	if !ok {
		return nil, nil
	}
	cp := *ins
	return &cp, nil
}

func (s *MemoryStore) Put(ctx context.Context, insight *models.Insight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *insight
	s.items[insight.CanonicalKey] = &cp
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, canonicalKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, canonicalKey)
	return nil
}

type memoryCacheEntry struct {
	insight   *models.Insight
	expiresAt time.Time
}

// MemoryCache is the in-process cache backend used when Redis is not
// configured. Entries past their TTL read as misses; inserts evict
// expired entries opportunistically and oldest-expiry entries beyond
// capacity.
type MemoryCache struct {
	mu       sync.Mutex
	items    map[string]memoryCacheEntry
	capacity int
}

func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryCache{
		items:    make(map[string]memoryCacheEntry, capacity),
		capacity: capacity,
	}
}

func (c *MemoryCache) Get(ctx context.Context, canonicalKey string) (*models.Insight, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[canonicalKey]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.items, canonicalKey)
		return nil, nil
	}
	cp := *entry.insight
	return &cp, nil
}

func (c *MemoryCache) Set(ctx context.Context, canonicalKey string, insight *models.Insight, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp := *insight
	c.items[canonicalKey] = memoryCacheEntry{
		insight:   &cp,
		expiresAt: time.Now().Add(ttl),
	}
	c.compact()
	return nil
}

func (c *MemoryCache) Invalidate(ctx context.Context, canonicalKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, canonicalKey)
	return nil
}

func (c *MemoryCache) compact() {
	now := time.Now()
	for key, entry := range c.items {
		if now.After(entry.expiresAt) {
			delete(c.items, key)
		}
	}
	for len(c.items) > c.capacity {
		var oldestKey string
		var oldest time.Time
		for key, entry := range c.items {
			if oldestKey == "" || entry.expiresAt.Before(oldest) {
				oldestKey = key
				oldest = entry.expiresAt
			}
		}
		delete(c.items, oldestKey)
	}
}
