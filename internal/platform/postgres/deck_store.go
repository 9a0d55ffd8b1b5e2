package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studybuddy-api/internal/domain"
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
	"github.com/phrazzld/studybuddy-api/internal/store"
)

const (
	findDeckByNameQuery = `
		SELECT id, name, created_at
		FROM decks
		WHERE name = $1
		ORDER BY created_at ASC, id ASC
		LIMIT 1`

	insertDeckQuery = `INSERT INTO decks (id, name, created_at) VALUES ($1, $2, $3)`
)

// PostgresDeckStore implements store.DeckStore using PostgreSQL.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a deck store on a connection or transaction.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

var _ store.DeckStore = (*PostgresDeckStore)(nil)

// FindByName returns the oldest deck with the given name, or store.ErrDeckNotFound.
func (s *PostgresDeckStore) FindByName(ctx context.Context, name string) (*domain.Deck, error) {
	var d domain.Deck
	err := s.db.QueryRowContext(ctx, findDeckByNameQuery, name).Scan(&d.ID, &d.Name, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrDeckNotFound
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to find deck",
			slog.String("deck_name", name),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", "find", "query failed", MapError(err))
	}
	return &d, nil
}

// Create inserts a new deck.
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if _, err := s.db.ExecContext(ctx, insertDeckQuery, deck.ID, deck.Name, deck.CreatedAt); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create deck",
			slog.String("deck_name", deck.Name),
			slog.String("error", err.Error()))
		return store.NewStoreError("deck", "create", "insert failed", MapError(err))
	}

	return nil
}

// WithTx returns a deck store bound to tx.
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{db: tx, logger: s.logger}
}
