package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/studybuddy-api/internal/domain"
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
	"github.com/phrazzld/studybuddy-api/internal/store"
)

const (
	listCardsQuery = `
		SELECT c.id, c.deck_id, c.question, c.answer, c.created_at, c.updated_at,
		       COALESCE(d.name, '')
		FROM flashcards c
		LEFT JOIN decks d ON d.id = c.deck_id
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $1`

	getCardQuery = `
		SELECT id, deck_id, question, answer, created_at, updated_at
		FROM flashcards
		WHERE id = $1`

	updateCardQuery = `
		UPDATE flashcards
		SET question = $2, answer = $3, updated_at = $4
		WHERE id = $1`

	deleteCardQuery = `DELETE FROM flashcards WHERE id = $1`
)

// PostgresCardStore implements store.CardStore using PostgreSQL.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a card store on a connection or transaction.
// It panics if db is nil. A nil logger means slog.Default().
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

var _ store.CardStore = (*PostgresCardStore)(nil)

// PostgreSQL accepts at most 65535 bind parameters per statement.
const (
	maxBindParams     = 65535
	cardInsertColumns = 6
	maxCardsPerInsert = maxBindParams / cardInsertColumns
)

// CreateMultiple inserts all cards with multi-row INSERTs of at most
// maxCardsPerInsert rows each. Every card is validated first; nothing is
// written if any card is invalid. Callers needing all-or-nothing across
// batches run it inside a transaction.
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	if len(cards) == 0 {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	for i, card := range cards {
		if err := card.Validate(); err != nil {
			log.Debug("rejecting invalid card", slog.Int("index", i), slog.String("error", err.Error()))
			return fmt.Errorf("%w: card %d: %v", store.ErrInvalidEntity, i, err)
		}
	}

	for start := 0; start < len(cards); start += maxCardsPerInsert {
		batch := cards[start:min(start+maxCardsPerInsert, len(cards))]
		if err := s.insertBatch(ctx, batch); err != nil {
			log.Error("failed to insert cards",
				slog.Int("offset", start),
				slog.Int("count", len(batch)),
				slog.String("error", err.Error()))
			return store.NewStoreError("card", "create", "failed to insert cards", MapError(err))
		}
	}

	log.Debug("cards inserted", slog.Int("count", len(cards)))
	return nil
}

// insertBatch writes cards in a single statement.
func (s *PostgresCardStore) insertBatch(ctx context.Context, cards []*domain.Card) error {
	args := make([]any, 0, len(cards)*cardInsertColumns)
	placeholders := make([]string, 0, len(cards))
	for i, card := range cards {
		n := i * cardInsertColumns
		placeholders = append(placeholders,
			fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6))
		args = append(args, card.ID, card.DeckID, card.Question, card.Answer, card.CreatedAt, card.UpdatedAt)
	}

	query := "INSERT INTO flashcards (id, deck_id, question, answer, created_at, updated_at) VALUES " +
		strings.Join(placeholders, ", ")

	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// List returns up to limit cards, newest first, with deck names resolved.
func (s *PostgresCardStore) List(ctx context.Context, limit int) ([]*domain.CardView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listCardsQuery, limit)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	views := make([]*domain.CardView, 0)
	for rows.Next() {
		var v domain.CardView
		if err := rows.Scan(
			&v.ID, &v.DeckID, &v.Question, &v.Answer, &v.CreatedAt, &v.UpdatedAt, &v.DeckName,
		); err != nil {
			return nil, store.NewStoreError("card", "list", "scan failed", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("card", "list", "iteration failed", err)
	}

	return views, nil
}

// GetByID returns store.ErrCardNotFound when no card has the given ID.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var c domain.Card
	err := s.db.QueryRowContext(ctx, getCardQuery, id).
		Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCardNotFound
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get card",
			slog.String("card_id", id.String()),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", "get", "query failed", MapError(err))
	}
	return &c, nil
}

// Update writes the card's question, answer and updated_at.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, updateCardQuery,
		card.ID, card.Question, card.Answer, card.UpdatedAt)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update card",
			slog.String("card_id", card.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("card", "update", "query failed", MapError(err))
	}

	return checkRowsAffected(result, store.ErrCardNotFound)
}

// Delete returns store.ErrCardNotFound when no card has the given ID.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, deleteCardQuery, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete card",
			slog.String("card_id", id.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("card", "delete", "query failed", MapError(err))
	}

	return checkRowsAffected(result, store.ErrCardNotFound)
}

// WithTx returns a card store bound to tx.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{db: tx, logger: s.logger}
}
