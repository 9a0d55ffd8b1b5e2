package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/studybuddy-api/internal/generation"
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
)

// DefaultHuggingFaceEndpoint is the hosted Inference API base URL.
const DefaultHuggingFaceEndpoint = "https://api-inference.huggingface.co/models"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	return fmt.Sprintf("inference service returned status %d: %s", e.StatusCode, body)
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

// HuggingFaceClient calls a text-generation model on the Hugging Face
// Inference API.
type HuggingFaceClient struct {
	url        string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ generation.Completer = (*HuggingFaceClient)(nil)

// NewHuggingFaceClient creates a client posting to <endpoint>/<model>.
func NewHuggingFaceClient(opts Options, logger *slog.Logger) (*HuggingFaceClient, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultHuggingFaceEndpoint
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &HuggingFaceClient{
		url:        strings.TrimRight(endpoint, "/") + "/" + strings.TrimLeft(opts.Model, "/"),
		token:      opts.APIKey,
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "huggingface")),
	}, nil
}

// Complete implements generation.Completer. The deadline comes from ctx.
func (c *HuggingFaceClient) Complete(ctx context.Context, prompt string, params generation.Params) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	body, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   params.MaxNewTokens,
			Temperature:    params.Temperature,
			ReturnFullText: params.ReturnFullText,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to inference service failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug("inference service returned error status",
			slog.Int("status", resp.StatusCode))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(payload)}
	}

	return payload, nil
}
