package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Cache stores JSON values with a TTL. Misses report false without error.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DefaultTTL applies when callers pass a non-positive ttl.
const DefaultTTL = 24 * time.Hour

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// Memory is an in-process Cache used when Redis is not configured.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if ok && !m.now().Before(entry.expires) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = memoryEntry{data: b, expires: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

var _ Cache = (*Memory)(nil)
