package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/studybuddy-api/internal/domain"
	"github.com/phrazzld/studybuddy-api/internal/service"
)

// MockCardService implements service.CardService for testing
type MockCardService struct {
	// Custom behavior functions
	SaveCardsFn  func(ctx context.Context, deckName string, drafts []domain.CardDraft) (int, error)
	ListCardsFn  func(ctx context.Context, limit int) ([]*domain.CardView, error)
	UpdateCardFn func(ctx context.Context, id uuid.UUID, patch domain.CardPatch) (*domain.Card, error)
	DeleteCardFn func(ctx context.Context, id uuid.UUID) error

	// Default return values
	Card         *domain.Card
	Cards        []*domain.CardView
	DefaultError error
}

var _ service.CardService = (*MockCardService)(nil)

// SaveCards implements the CardService.SaveCards method
func (m *MockCardService) SaveCards(ctx context.Context, deckName string, drafts []domain.CardDraft) (int, error) {
	if m.SaveCardsFn != nil {
		return m.SaveCardsFn(ctx, deckName, drafts)
	}
	if m.DefaultError != nil {
		return 0, m.DefaultError
	}
	return len(domain.CompleteDrafts(drafts)), nil
}

// ListCards implements the CardService.ListCards method
func (m *MockCardService) ListCards(ctx context.Context, limit int) ([]*domain.CardView, error) {
	if m.ListCardsFn != nil {
		return m.ListCardsFn(ctx, limit)
	}
	return m.Cards, m.DefaultError
}

// UpdateCard implements the CardService.UpdateCard method
func (m *MockCardService) UpdateCard(ctx context.Context, id uuid.UUID, patch domain.CardPatch) (*domain.Card, error) {
	if m.UpdateCardFn != nil {
		return m.UpdateCardFn(ctx, id, patch)
	}
	return m.Card, m.DefaultError
}

// DeleteCard implements the CardService.DeleteCard method
func (m *MockCardService) DeleteCard(ctx context.Context, id uuid.UUID) error {
	if m.DeleteCardFn != nil {
		return m.DeleteCardFn(ctx, id)
	}
	return m.DefaultError
}
