package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/studybuddy-api/internal/domain"
	"github.com/phrazzld/studybuddy-api/internal/store"
)

// MockCardStore implements store.CardStore for testing.
// WithTx returns the mock itself so expectations hold inside transactions.
type MockCardStore struct {
	CreateMultipleFn func(ctx context.Context, cards []*domain.Card) error
	ListFn           func(ctx context.Context, limit int) ([]*domain.CardView, error)
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	UpdateFn         func(ctx context.Context, card *domain.Card) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error

	mu       sync.Mutex
	Created  [][]*domain.Card
	Updated  []*domain.Card
	Deleted  []uuid.UUID
	Limits   []int
	TxCalled bool
}

var _ store.CardStore = (*MockCardStore)(nil)

// CreateMultiple implements store.CardStore
func (m *MockCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	m.mu.Lock()
	m.Created = append(m.Created, cards)
	m.mu.Unlock()
	if m.CreateMultipleFn != nil {
		return m.CreateMultipleFn(ctx, cards)
	}
	return nil
}

// List implements store.CardStore
func (m *MockCardStore) List(ctx context.Context, limit int) ([]*domain.CardView, error) {
	m.mu.Lock()
	m.Limits = append(m.Limits, limit)
	m.mu.Unlock()
	if m.ListFn != nil {
		return m.ListFn(ctx, limit)
	}
	return []*domain.CardView{}, nil
}

// GetByID implements store.CardStore
func (m *MockCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrCardNotFound
}

// Update implements store.CardStore
func (m *MockCardStore) Update(ctx context.Context, card *domain.Card) error {
	m.mu.Lock()
	m.Updated = append(m.Updated, card)
	m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, card)
	}
	return nil
}

// Delete implements store.CardStore
func (m *MockCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.Deleted = append(m.Deleted, id)
	m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// WithTx implements store.CardStore
func (m *MockCardStore) WithTx(_ *sql.Tx) store.CardStore {
	m.mu.Lock()
	m.TxCalled = true
	m.mu.Unlock()
	return m
}

// MockDeckStore implements store.DeckStore for testing.
// Without FindByNameFn it behaves like a tiny in-memory store.
type MockDeckStore struct {
	FindByNameFn func(ctx context.Context, name string) (*domain.Deck, error)
	CreateFn     func(ctx context.Context, deck *domain.Deck) error

	mu      sync.Mutex
	Decks   []*domain.Deck
	Lookups []string
}

var _ store.DeckStore = (*MockDeckStore)(nil)

// FindByName implements store.DeckStore
func (m *MockDeckStore) FindByName(ctx context.Context, name string) (*domain.Deck, error) {
	m.mu.Lock()
	m.Lookups = append(m.Lookups, name)
	m.mu.Unlock()
	if m.FindByNameFn != nil {
		return m.FindByNameFn(ctx, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.Decks {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, store.ErrDeckNotFound
}

// Create implements store.DeckStore
func (m *MockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, deck)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Decks = append(m.Decks, deck)
	return nil
}

// WithTx implements store.DeckStore
func (m *MockDeckStore) WithTx(_ *sql.Tx) store.DeckStore {
	return m
}
