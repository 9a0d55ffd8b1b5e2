package generation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/studybuddy-api/internal/domain"
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
	"github.com/phrazzld/studybuddy-api/internal/redact"
)

// Default sampling settings and request timeout.
const (
	DefaultMaxNewTokens = 400
	DefaultTemperature  = 0.3
	DefaultTimeout      = 60 * time.Second
)

// Config holds the pipeline settings. Zero values select the defaults.
type Config struct {
	MaxNewTokens   int
	Temperature    *float64
	Timeout        time.Duration
	PromptTemplate string
}

// Pipeline is the Generator that calls a Completer directly.
type Pipeline struct {
	completer Completer
	prompt    *Prompt
	params    Params
	timeout   time.Duration
	logger    *slog.Logger
}

var _ Generator = (*Pipeline)(nil)

// NewPipeline creates a Pipeline around completer.
func NewPipeline(completer Completer, cfg Config, logger *slog.Logger) (*Pipeline, error) {
	if completer == nil {
		return nil, fmt.Errorf("%w: completer cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	prompt, err := NewPrompt(cfg.PromptTemplate)
	if err != nil {
		return nil, err
	}

	params := Params{
		MaxNewTokens:   DefaultMaxNewTokens,
		Temperature:    DefaultTemperature,
		ReturnFullText: false,
	}
	if cfg.MaxNewTokens > 0 {
		params.MaxNewTokens = cfg.MaxNewTokens
	}
	if cfg.Temperature != nil {
		params.Temperature = *cfg.Temperature
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Pipeline{
		completer: completer,
		prompt:    prompt,
		params:    params,
		timeout:   timeout,
		logger:    logger.With(slog.String("component", "generation")),
	}, nil
}

// Fingerprint identifies the prompt template and sampling parameters. Results
// cached under one fingerprint are not valid for another.
func (p *Pipeline) Fingerprint() string {
	h := sha256.New()
	_, _ = io.WriteString(h, p.prompt.source)
	_, _ = fmt.Fprintf(h, "\x00%d|%g|%t", p.params.MaxNewTokens, p.params.Temperature, p.params.ReturnFullText)
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Generate implements Generator.
func (p *Pipeline) Generate(ctx context.Context, notes string) ([]domain.CardDraft, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, &Error{Op: "validate", Err: ErrInvalidInput}
	}

	prompt, err := p.prompt.Render(notes)
	if err != nil {
		return nil, &Error{Op: "prompt", Err: ErrInvalidConfig, Cause: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	payload, err := p.completer.Complete(callCtx, prompt, p.params)
	elapsed := time.Since(start)
	if err == nil && callCtx.Err() != nil {
		// a completer that ignored cancellation still counts as timed out
		err = callCtx.Err()
	}
	if err != nil {
		detail := redact.Error(err)
		if errors.Is(err, context.DeadlineExceeded) {
			detail = fmt.Sprintf("no response within %s", p.timeout)
		}
		log.Warn("inference call failed",
			slog.String("error", detail),
			slog.Duration("elapsed", elapsed))
		return nil, &Error{Op: "complete", Detail: detail, Err: ErrUpstreamUnavailable, Cause: err}
	}

	text := NormalizeResponse(payload)
	log.Debug("inference call completed",
		slog.Duration("elapsed", elapsed),
		slog.Int("notes_length", len(notes)),
		slog.Int("response_length", len(text)))

	elems, ok := ExtractJSONArray(text)
	if !ok {
		log.Info("model output contained no parseable card array", slog.Int("response_length", len(text)))
		return nil, &Error{Op: "extract", Raw: text, Err: ErrMalformedModelOutput}
	}

	drafts := draftsFromElements(elems)
	if len(drafts) == 0 {
		log.Info("model output contained no complete cards", slog.Int("elements", len(elems)))
		return nil, &Error{Op: "validate_cards", Raw: text, Err: ErrNoUsableCards}
	}

	log.Debug("generated cards", slog.Int("count", len(drafts)), slog.Int("elements", len(elems)))
	return drafts, nil
}
