package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/studybuddy-api/internal/api/shared"
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
	"github.com/phrazzld/studybuddy-api/internal/service"
)

// FlashcardHandler handles flashcard CRUD requests
type FlashcardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler
func NewFlashcardHandler(cardService service.CardService, logger *slog.Logger) *FlashcardHandler {
	if cardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardService cannot be nil for FlashcardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "flashcard_handler")),
	}
}

// ListFlashcards handles GET /flashcards requests
// It returns the newest cards first, at most ?limit of them.
func (h *FlashcardHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	limit, err := getQueryLimit(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), limit)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("listed flashcards", slog.Int("count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, cardViewsToList(cards))
}

// CreateFlashcards handles POST /flashcards requests
// Incomplete cards are dropped; the response reports how many were stored.
func (h *FlashcardHandler) CreateFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SaveCardsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	inserted, err := h.cardService.SaveCards(r.Context(), req.Deck, req.Cards)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("stored flashcards",
		slog.Int("submitted", len(req.Cards)),
		slog.Int("inserted", inserted))
	shared.RespondWithJSON(w, r, http.StatusOK, SaveCardsResponse{OK: true, Inserted: inserted})
}

// UpdateFlashcard handles PUT /flashcards/{id} requests
func (h *FlashcardHandler) UpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var req UpdateCardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), id, req.Patch())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("updated flashcard", slog.String("card_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// DeleteFlashcard handles DELETE /flashcards/{id} requests
func (h *FlashcardHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("deleted flashcard", slog.String("card_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, OKResponse{OK: true})
}
