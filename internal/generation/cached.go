package generation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/studybuddy-api/internal/cache"
	"github.com/phrazzld/studybuddy-api/internal/domain"
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
)

// CachingGenerator serves repeated notes from a cache. Only successful
// results are stored; cache faults are logged and otherwise ignored.
type CachingGenerator struct {
	next      Generator
	cache     cache.Cache
	ttl       time.Duration
	namespace string
	logger    *slog.Logger
}

var _ Generator = (*CachingGenerator)(nil)

// NewCachingGenerator wraps next. namespace separates results of different
// models in a shared cache.
func NewCachingGenerator(
	next Generator,
	c cache.Cache,
	ttl time.Duration,
	namespace string,
	logger *slog.Logger,
) *CachingGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingGenerator{
		next:      next,
		cache:     c,
		ttl:       ttl,
		namespace: namespace,
		logger:    logger.With(slog.String("component", "generation_cache")),
	}
}

// Generate implements Generator.
func (g *CachingGenerator) Generate(ctx context.Context, notes string) ([]domain.CardDraft, error) {
	if strings.TrimSpace(notes) == "" {
		return g.next.Generate(ctx, notes)
	}

	log := logger.FromContextOrDefault(ctx, g.logger)
	key := cache.Key(g.namespace, notes)

	cached, err := g.cache.GetCards(ctx, key)
	if err != nil {
		log.Warn("generation cache read failed", slog.String("error", err.Error()))
	} else if len(cached) > 0 {
		log.Debug("generation cache hit", slog.Int("count", len(cached)))
		return cached, nil
	}

	drafts, err := g.next.Generate(ctx, notes)
	if err != nil {
		return nil, err
	}

	if err := g.cache.SetCards(ctx, key, drafts, g.ttl); err != nil {
		log.Warn("generation cache write failed", slog.String("error", err.Error()))
	}
	return drafts, nil
}
