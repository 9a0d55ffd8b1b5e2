package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/studybuddy-api/internal/generation"
)

// CompleterCall records one Complete invocation.
type CompleterCall struct {
	Prompt string
	Params generation.Params
}

// MockCompleter implements generation.Completer for testing
type MockCompleter struct {
	CompleteFn func(ctx context.Context, prompt string, params generation.Params) ([]byte, error)

	// Default response values
	Payload []byte
	Err     error

	mu    sync.Mutex
	calls []CompleterCall
}

var _ generation.Completer = (*MockCompleter)(nil)

// Complete implements generation.Completer
func (m *MockCompleter) Complete(ctx context.Context, prompt string, params generation.Params) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, CompleterCall{Prompt: prompt, Params: params})
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, prompt, params)
	}
	return m.Payload, m.Err
}

// Calls returns every recorded invocation.
func (m *MockCompleter) Calls() []CompleterCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CompleterCall(nil), m.calls...)
}

// NewMockCompleterWithText returns a completer answering with a raw payload.
func NewMockCompleterWithText(payload string) *MockCompleter {
	return &MockCompleter{Payload: []byte(payload)}
}
