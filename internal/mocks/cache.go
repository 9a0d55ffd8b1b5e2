package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/studybuddy-api/internal/cache"
	"github.com/phrazzld/studybuddy-api/internal/domain"
)

// MockCache is an in-memory cache.Cache with injectable failures.
type MockCache struct {
	GetErr error
	SetErr error

	mu      sync.Mutex
	entries map[string][]domain.CardDraft
	ttls    map[string]time.Duration
	Gets    int
	Sets    int
}

var _ cache.Cache = (*MockCache)(nil)

// NewMockCache creates an empty MockCache.
func NewMockCache() *MockCache {
	return &MockCache{
		entries: make(map[string][]domain.CardDraft),
		ttls:    make(map[string]time.Duration),
	}
}

// GetCards implements cache.Cache
func (m *MockCache) GetCards(_ context.Context, key string) ([]domain.CardDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.entries[key], nil
}

// SetCards implements cache.Cache
func (m *MockCache) SetCards(_ context.Context, key string, cards []domain.CardDraft, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.entries[key] = cards
	m.ttls[key] = ttl
	return nil
}

// TTL returns the TTL the key was stored with.
func (m *MockCache) TTL(key string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ttl, ok := m.ttls[key]
	return ttl, ok
}

// Len returns the number of stored keys.
func (m *MockCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close implements cache.Cache
func (m *MockCache) Close() error {
	return nil
}
