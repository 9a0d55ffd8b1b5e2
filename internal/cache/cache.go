// Package cache stores generated flashcard drafts keyed by a digest of the
// notes they were generated from.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/phrazzld/studybuddy-api/internal/domain"
)

// Cache provides generation result caching.
type Cache interface {
	// GetCards returns the cached drafts for key, or nil on a miss.
	GetCards(ctx context.Context, key string) ([]domain.CardDraft, error)

	// SetCards stores drafts under key for ttl.
	SetCards(ctx context.Context, key string, cards []domain.CardDraft, ttl time.Duration) error

	// Close releases the underlying connection.
	Close() error
}

// Key derives a cache key from a namespace, such as the model id, and the
// trimmed notes. Notes differing only in surrounding whitespace share a key.
func Key(namespace, notes string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(notes)))
	return namespace + ":" + hex.EncodeToString(sum[:])
}
