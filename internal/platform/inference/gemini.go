package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/studybuddy-api/internal/generation"
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
	"google.golang.org/genai"
)

// ErrEmptyCompletion is returned when a service answers without any text.
var ErrEmptyCompletion = errors.New("inference service returned no content")

// GeminiClient generates text with a Google Gemini model.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

var _ generation.Completer = (*GeminiClient)(nil)

// NewGeminiClient creates a client for the Gemini API.
func NewGeminiClient(ctx context.Context, opts Options, logger *slog.Logger) (*GeminiClient, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.Endpoint != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: opts.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &GeminiClient{
		client: client,
		model:  opts.Model,
		logger: logger.With(slog.String("component", "gemini")),
	}, nil
}

// Complete implements generation.Completer.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, params generation.Params) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	temperature := float32(params.Temperature)
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(params.MaxNewTokens),
	})
	if err != nil {
		log.Debug("gemini request failed", slog.String("model", c.model))
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		log.Debug("gemini returned no text", slog.String("model", c.model))
		return nil, err
	}

	log.Debug("gemini completion received", slog.String("model", c.model), slog.Int("length", len(text)))
	return json.Marshal(text)
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyCompletion
	}
	return b.String(), nil
}
