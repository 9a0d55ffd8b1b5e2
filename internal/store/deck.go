package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/studybuddy-api/internal/domain"
)

// DeckStore defines the interface for deck persistence.
type DeckStore interface {
	// FindByName returns the oldest deck with exactly the given name.
	// Returns ErrDeckNotFound if no deck has that name.
	FindByName(ctx context.Context, name string) (*domain.Deck, error)

	// Create saves a new deck. The deck must pass domain validation.
	Create(ctx context.Context, deck *domain.Deck) error

	// WithTx returns a DeckStore that runs its queries in the given transaction.
	WithTx(tx *sql.Tx) DeckStore
}
