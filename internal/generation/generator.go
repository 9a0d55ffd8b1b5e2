package generation

import (
	"context"

	"github.com/phrazzld/studybuddy-api/internal/domain"
)

// MaxCards is the most drafts a single generation returns.
const MaxCards = 5

// Generator produces flashcard drafts from study notes.
type Generator interface {
	// Generate returns between 1 and MaxCards complete drafts, or an *Error.
	Generate(ctx context.Context, notes string) ([]domain.CardDraft, error)
}

// Params are the sampling settings sent with a completion request.
type Params struct {
	MaxNewTokens   int
	Temperature    float64
	ReturnFullText bool
}

// Completer is a remote text-generation service.
//
// Complete returns the raw response payload. Implementations for services
// that answer with plain text should encode it as a JSON string so the
// pipeline can tell it apart from structured payloads.
type Completer interface {
	Complete(ctx context.Context, prompt string, params Params) ([]byte, error)
}
