package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/studybuddy-api/internal/api/shared"
	"github.com/phrazzld/studybuddy-api/internal/generation"
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
)

// GenerateHandler turns notes into flashcard drafts
type GenerateHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler
func NewGenerateHandler(generator generation.Generator, logger *slog.Logger) *GenerateHandler {
	if generator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generator cannot be nil for GenerateHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GenerateHandler{
		generator: generator,
		logger:    logger.With(slog.String("component", "generate_handler")),
	}
}

// Generate handles POST /generate requests
// The drafts are returned to the client and never stored here.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cards, err := h.generator.Generate(r.Context(), req.Notes)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Info("generated flashcards", slog.Int("count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{Cards: cards})
}
