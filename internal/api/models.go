package api

import (
	"time"

	"github.com/phrazzld/studybuddy-api/internal/domain"
)

// SaveCardsRequest is the body of POST /flashcards.
type SaveCardsRequest struct {
	Cards []domain.CardDraft `json:"cards" validate:"required"`
	Deck  string             `json:"deck"`
}

// SaveCardsResponse reports how many cards were stored.
type SaveCardsResponse struct {
	OK       bool `json:"ok"`
	Inserted int  `json:"inserted"`
}

// UpdateCardRequest is the body of PUT /flashcards/{id}. Omitted fields are
// left unchanged.
type UpdateCardRequest struct {
	Question *string `json:"question,omitempty"`
	Answer   *string `json:"answer,omitempty"`
}

// Patch converts the request to a domain patch.
func (r UpdateCardRequest) Patch() domain.CardPatch {
	return domain.CardPatch{Question: r.Question, Answer: r.Answer}
}

// OKResponse acknowledges an operation without a payload.
type OKResponse struct {
	OK bool `json:"ok"`
}

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Notes string `json:"notes"`
}

// GenerateResponse carries the generated drafts. They are not stored.
type GenerateResponse struct {
	Cards []domain.CardDraft `json:"cards"`
}

// FlashcardListItem is one element of GET /flashcards.
// Deck is null for a card whose deck no longer exists.
type FlashcardListItem struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Deck      *string   `json:"deck"`
	CreatedAt time.Time `json:"created_at"`
}

// FlashcardResponse represents a single stored card.
type FlashcardResponse struct {
	ID        string    `json:"id"`
	DeckID    string    `json:"deck_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func cardToResponse(card *domain.Card) FlashcardResponse {
	return FlashcardResponse{
		ID:        card.ID.String(),
		DeckID:    card.DeckID.String(),
		Question:  card.Question,
		Answer:    card.Answer,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}

func cardViewsToList(cards []*domain.CardView) []FlashcardListItem {
	items := make([]FlashcardListItem, 0, len(cards))
	for _, c := range cards {
		var deck *string
		if c.DeckName != "" {
			deck = &c.DeckName
		}
		items = append(items, FlashcardListItem{
			ID:        c.ID.String(),
			Question:  c.Question,
			Answer:    c.Answer,
			Deck:      deck,
			CreatedAt: c.CreatedAt,
		})
	}
	return items
}
