package repository

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultMemoryCacheSize bounds a MemoryCache built with a non-positive size.
const DefaultMemoryCacheSize = 10_000

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process LRU CacheRepository with per-entry TTL, safe
// for concurrent use.
type MemoryCache struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	lru     *list.List
	now     func() time.Time
}

func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = DefaultMemoryCacheSize
	}
	return &MemoryCache{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return "", false, nil
	}
	entry := elem.Value.(*memoryEntry)
	if m.expired(entry) {
		m.remove(elem)
		return "", false, nil
	}
	m.lru.MoveToFront(elem)
	return entry.value, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := &memoryEntry{key: key, value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		elem.Value = entry
		m.lru.MoveToFront(elem)
		return nil
	}

	m.items[key] = m.lru.PushFront(entry)
	for m.lru.Len() > m.maxSize {
		m.remove(m.lru.Back())
	}
	return nil
}

// CleanExpired drops every expired entry and returns how many went.
func (m *MemoryCache) CleanExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for elem := m.lru.Front(); elem != nil; {
		next := elem.Next()
		if m.expired(elem.Value.(*memoryEntry)) {
			m.remove(elem)
			removed++
		}
		elem = next
	}
	return removed
}

// Len reports the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *MemoryCache) expired(entry *memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)
}

func (m *MemoryCache) remove(elem *list.Element) {
	delete(m.items, elem.Value.(*memoryEntry).key)
	m.lru.Remove(elem)
}
