package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/studybuddy-api/internal/domain"
	"github.com/phrazzld/studybuddy-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, notes string) ([]domain.CardDraft, error)

	// Default response values
	Cards []domain.CardDraft
	Err   error

	mu    sync.Mutex
	calls []string
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements generation.Generator
func (m *MockGenerator) Generate(ctx context.Context, notes string) ([]domain.CardDraft, error) {
	m.mu.Lock()
	m.calls = append(m.calls, notes)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, notes)
	}
	return m.Cards, m.Err
}

// Calls returns the notes passed to each Generate call, in order.
func (m *MockGenerator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// NewMockGeneratorWithCards creates a MockGenerator that returns cards
func NewMockGeneratorWithCards(cards ...domain.CardDraft) *MockGenerator {
	return &MockGenerator{Cards: cards}
}

// NewMockGeneratorWithError creates a MockGenerator that returns err
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}
