package inference

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/studybuddy-api/internal/config"
	"github.com/phrazzld/studybuddy-api/internal/generation"
)

// Options holds the settings shared by all clients.
type Options struct {
	APIKey   string
	Model    string
	Endpoint string // empty selects the service default

	// HTTPClient overrides the transport. Nil uses a default client.
	HTTPClient *http.Client
}

func (o Options) validate() error {
	if o.APIKey == "" {
		return fmt.Errorf("%w: api key cannot be empty", generation.ErrInvalidConfig)
	}
	if o.Model == "" {
		return fmt.Errorf("%w: model cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

// New creates the Completer selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Completer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts := Options{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		Endpoint: cfg.Endpoint,
	}

	logger.Info("configuring inference provider",
		slog.String("provider", cfg.Provider),
		slog.String("model", cfg.Model))

	switch cfg.Provider {
	case config.ProviderHuggingFace, "":
		return NewHuggingFaceClient(opts, logger)
	case config.ProviderGemini:
		return NewGeminiClient(ctx, opts, logger)
	case config.ProviderOpenAI:
		return NewOpenAIClient(opts, logger)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}
