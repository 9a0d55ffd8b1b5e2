package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/phrazzld/studybuddy-api/internal/generation"
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
)

// OpenAIClient calls the OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
	logger *slog.Logger
}

var _ generation.Completer = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client. Retries are disabled; the pipeline
// reports failures to the caller instead.
func NewOpenAIClient(opts Options, logger *slog.Logger) (*OpenAIClient, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.Endpoint != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.Endpoint))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	cli := openai.NewClient(reqOpts...)
	return &OpenAIClient{
		client: &cli,
		model:  openai.ChatModel(opts.Model),
		logger: logger.With(slog.String("component", "openai")),
	}, nil
}

// Complete implements generation.Completer.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, params generation.Params) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature:         openai.Float(params.Temperature),
		MaxCompletionTokens: openai.Int(int64(params.MaxNewTokens)),
	})
	if err != nil {
		log.Debug("openai request failed", slog.String("model", string(c.model)))
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Debug("openai returned no content", slog.String("model", string(c.model)))
		return nil, ErrEmptyCompletion
	}

	choice := resp.Choices[0]
	log.Debug("openai completion received",
		slog.String("model", string(c.model)),
		slog.String("finish_reason", choice.FinishReason),
		slog.Int("length", len(choice.Message.Content)))
	return json.Marshal(choice.Message.Content)
}
