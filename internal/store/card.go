package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/studybuddy-api/internal/domain"
)

// CardStore defines the interface for flashcard persistence.
type CardStore interface {
	// CreateMultiple saves multiple cards to the store.
	// This method should be run within a transaction so that either every
	// card is inserted or none are. Use WithTx together with RunInTransaction:
	//
	//   err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//       return cardStore.WithTx(tx).CreateMultiple(ctx, cards)
	//   })
	//
	// All cards must pass domain validation.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// List returns up to limit cards ordered newest first, each with its
	// deck name resolved. Cards whose deck no longer exists have an empty
	// DeckName.
	List(ctx context.Context, limit int) ([]*domain.CardView, error)

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Update persists the question, answer and updated_at of an existing card.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a CardStore that runs its queries in the given transaction.
	WithTx(tx *sql.Tx) CardStore
}
