package generation

import (
	"context"
	"strings"

	"github.com/phrazzld/studybuddy-api/internal/domain"
	"golang.org/x/sync/semaphore"
)

// LimitedGenerator bounds the number of generations in flight. Callers
// beyond the limit wait; a caller whose context ends while waiting gets
// ErrUpstreamUnavailable.
type LimitedGenerator struct {
	next Generator
	sem  *semaphore.Weighted
}

var _ Generator = (*LimitedGenerator)(nil)

// NewLimitedGenerator wraps next with a limit of max concurrent calls.
// It returns next unchanged when max is not positive.
func NewLimitedGenerator(next Generator, max int) Generator {
	if max <= 0 {
		return next
	}
	return &LimitedGenerator{next: next, sem: semaphore.NewWeighted(int64(max))}
}

// Generate implements Generator.
func (g *LimitedGenerator) Generate(ctx context.Context, notes string) ([]domain.CardDraft, error) {
	if strings.TrimSpace(notes) == "" {
		return g.next.Generate(ctx, notes)
	}

	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, &Error{
			Op:     "admit",
			Detail: "too many generations in progress",
			Err:    ErrUpstreamUnavailable,
			Cause:  err,
		}
	}
	defer g.sem.Release(1)

	return g.next.Generate(ctx, notes)
}
