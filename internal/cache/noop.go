package cache

import (
	"context"
	"time"

	"github.com/phrazzld/studybuddy-api/internal/domain"
)

// NoOpCache never stores anything. It is used when no Redis URL is
// configured or Redis is unreachable at startup.
type NoOpCache struct{}

var _ Cache = NoOpCache{}

// NewNoOpCache creates a new no-op cache instance
func NewNoOpCache() NoOpCache {
	return NoOpCache{}
}

// GetCards always misses.
func (NoOpCache) GetCards(context.Context, string) ([]domain.CardDraft, error) {
	return nil, nil
}

// SetCards discards the drafts.
func (NoOpCache) SetCards(context.Context, string, []domain.CardDraft, time.Duration) error {
	return nil
}

// Close does nothing.
func (NoOpCache) Close() error {
	return nil
}
