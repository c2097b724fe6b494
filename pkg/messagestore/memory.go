package messagestore

import (
	"context"
	"sync"
	"time"
)

// MemoryProvider keeps entries in process memory. Expired entries are
// dropped lazily on access.
type MemoryProvider struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data    []byte
	expires time.Time // zero means never
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		entries: make(map[string]memoryEntry),
	}
}

// Name implements Provider.
func (p *MemoryProvider) Name() string {
	return "memory"
}

// Get implements Provider.
func (p *MemoryProvider) Get(ctx context.Context, key string) ([]byte, error) {
	p.mu.RLock()
	entry, ok := p.entries[key]
	p.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if !entry.expires.IsZero() && time.Now().After(entry.expires) {
		p.mu.Lock()
		delete(p.entries, key)
		p.mu.Unlock()
		return nil, ErrNotFound
	}
	return append([]byte(nil), entry.data...), nil
}

// Put implements Provider.
func (p *MemoryProvider) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		entry.expires = time.Now().Add(ttl)
	}
	p.mu.Lock()
	p.entries[key] = entry
	p.mu.Unlock()
	return nil
}

// Delete implements Provider.
func (p *MemoryProvider) Delete(ctx context.Context, key string) error {
	p.mu.Lock()
	delete(p.entries, key)
	p.mu.Unlock()
	return nil
}

// Close implements Provider.
func (p *MemoryProvider) Close() error {
	p.mu.Lock()
	p.entries = make(map[string]memoryEntry)
	p.mu.Unlock()
	return nil
}
