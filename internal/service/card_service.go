package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/studybuddy-api/internal/domain"
	"github.com/phrazzld/studybuddy-api/internal/events"
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
	"github.com/phrazzld/studybuddy-api/internal/store"
)

// List limits.
const (
	DefaultListLimit = 500
	MaxListLimit     = 500
)

// CardService provides card-related operations
type CardService interface {
	// SaveCards stores the complete drafts in the named deck, creating the deck
	// on first use. An empty name selects domain.DefaultDeckName. Incomplete
	// drafts are dropped; when none remain nothing is written and 0 is returned.
	SaveCards(ctx context.Context, deckName string, drafts []domain.CardDraft) (int, error)

	// ListCards returns the newest cards first with their deck names.
	// A limit outside [1, MaxListLimit] is clamped; 0 means DefaultListLimit.
	ListCards(ctx context.Context, limit int) ([]*domain.CardView, error)

	// UpdateCard applies a partial update and returns the updated card.
	UpdateCard(ctx context.Context, id uuid.UUID, patch domain.CardPatch) (*domain.Card, error)

	// DeleteCard removes a card.
	DeleteCard(ctx context.Context, id uuid.UUID) error
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	db        *sql.DB
	cardStore store.CardStore
	deckStore store.DeckStore
	emitter   events.EventEmitter
	logger    *slog.Logger
}

var _ CardService = (*cardServiceImpl)(nil)

// NewCardService creates a new CardService.
// It returns an error if the database or either store is nil. A nil emitter
// discards events.
func NewCardService(
	db *sql.DB,
	cardStore store.CardStore,
	deckStore store.DeckStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (CardService, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db", ErrNilDependency)
	}
	if cardStore == nil {
		return nil, fmt.Errorf("%w: cardStore", ErrNilDependency)
	}
	if deckStore == nil {
		return nil, fmt.Errorf("%w: deckStore", ErrNilDependency)
	}

	if logger == nil {
		logger = slog.Default()
	}
	if emitter == nil {
		emitter = events.NewInMemoryEventEmitter(logger)
	}

	return &cardServiceImpl{
		db:        db,
		cardStore: cardStore,
		deckStore: deckStore,
		emitter:   emitter,
		logger:    logger.With(slog.String("component", "card_service")),
	}, nil
}

// SaveCards implements CardService.SaveCards
func (s *cardServiceImpl) SaveCards(ctx context.Context, deckName string, drafts []domain.CardDraft) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	complete := domain.CompleteDrafts(drafts)
	if len(complete) == 0 {
		log.Debug("no complete cards to save", slog.Int("submitted", len(drafts)))
		return 0, nil
	}

	name := domain.ResolveDeckName(deckName)
	var deck *domain.Deck
	var cards []*domain.Card

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		deck, err = s.findOrCreateDeck(ctx, s.deckStore.WithTx(tx), name)
		if err != nil {
			return err
		}

		cards = make([]*domain.Card, 0, len(complete))
		for _, draft := range complete {
			card, err := domain.NewCard(deck.ID, draft)
			if err != nil {
				return NewCardServiceError("save_cards", "invalid card", err)
			}
			cards = append(cards, card)
		}

		if err := s.cardStore.WithTx(tx).CreateMultiple(ctx, cards); err != nil {
			log.Error("failed to create cards in transaction",
				slog.String("error", err.Error()),
				slog.String("deck_id", deck.ID.String()))
			return NewCardServiceError("save_cards", "failed to save cards", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info("saved cards",
		slog.Int("count", len(cards)),
		slog.Int("dropped", len(drafts)-len(cards)),
		slog.String("deck_id", deck.ID.String()))

	s.emitCardsSaved(ctx, deck, cards)
	return len(cards), nil
}

// findOrCreateDeck returns the deck named name, creating it when absent.
func (s *cardServiceImpl) findOrCreateDeck(ctx context.Context, decks store.DeckStore, name string) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := decks.FindByName(ctx, name)
	if err == nil {
		return deck, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, NewCardServiceError("save_cards", "failed to look up deck", err)
	}

	deck, err = domain.NewDeck(name)
	if err != nil {
		return nil, NewCardServiceError("save_cards", "invalid deck name", err)
	}
	if err := decks.Create(ctx, deck); err != nil {
		return nil, NewCardServiceError("save_cards", "failed to create deck", err)
	}

	log.Info("created deck", slog.String("deck_id", deck.ID.String()), slog.String("deck_name", name))
	return deck, nil
}

// emitCardsSaved publishes a cards.saved event. The cards are already
// committed, so failures are only logged.
func (s *cardServiceImpl) emitCardsSaved(ctx context.Context, deck *domain.Deck, cards []*domain.Card) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ids := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}

	event, err := events.NewEvent(events.TypeCardsSaved, events.CardsSavedPayload{
		DeckID:   deck.ID,
		DeckName: deck.Name,
		CardIDs:  ids,
	})
	if err != nil {
		log.Error("failed to build cards.saved event", slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit cards.saved event",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
	}
}

// ListCards implements CardService.ListCards
func (s *cardServiceImpl) ListCards(ctx context.Context, limit int) ([]*domain.CardView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	cards, err := s.cardStore.List(ctx, limit)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, NewCardServiceError("list_cards", "failed to list cards", err)
	}

	log.Debug("listed cards", slog.Int("count", len(cards)), slog.Int("limit", limit))
	return cards, nil
}

// UpdateCard implements CardService.UpdateCard
// An empty patch returns the stored card unchanged.
func (s *cardServiceImpl) UpdateCard(ctx context.Context, id uuid.UUID, patch domain.CardPatch) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	if patch.Empty() {
		card, err := s.cardStore.GetByID(ctx, id)
		if err != nil {
			return nil, s.cardLookupError("update_card", err)
		}
		return card, nil
	}

	var updated *domain.Card
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cardStore.WithTx(tx)

		card, err := cards.GetByID(ctx, id)
		if err != nil {
			return s.cardLookupError("update_card", err)
		}

		if err := card.Apply(patch); err != nil {
			return domain.NewValidationError("card", err.Error(), err)
		}

		if err := cards.Update(ctx, card); err != nil {
			return s.cardLookupError("update_card", err)
		}

		updated = card
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("updated card", slog.String("card_id", id.String()))
	return updated, nil
}

// validatePatch rejects provided fields that are blank after trimming.
func validatePatch(patch domain.CardPatch) error {
	if patch.Question != nil && strings.TrimSpace(*patch.Question) == "" {
		return domain.NewValidationError("question", "cannot be empty", domain.ErrCardQuestionEmpty)
	}
	if patch.Answer != nil && strings.TrimSpace(*patch.Answer) == "" {
		return domain.NewValidationError("answer", "cannot be empty", domain.ErrCardAnswerEmpty)
	}
	return nil
}

// DeleteCard implements CardService.DeleteCard
func (s *cardServiceImpl) DeleteCard(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.cardStore.Delete(ctx, id); err != nil {
		return s.cardLookupError("delete_card", err)
	}

	log.Info("deleted card", slog.String("card_id", id.String()))
	return nil
}

// cardLookupError wraps a store error, keeping not-found distinguishable.
func (s *cardServiceImpl) cardLookupError(op string, err error) error {
	if store.IsNotFoundError(err) {
		return NewCardServiceError(op, "card not found", store.ErrCardNotFound)
	}
	return NewCardServiceError(op, "store operation failed", err)
}
