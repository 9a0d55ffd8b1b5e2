package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardQuestionEmpty is returned when a card's question is empty after trimming.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardAnswerEmpty is returned when a card's answer is empty after trimming.
	ErrCardAnswerEmpty = errors.New("card answer cannot be empty")
)

// CardDraft is a question/answer pair that has not been persisted yet.
// Generated cards and cards submitted by clients both start as drafts.
type CardDraft struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Normalize returns a copy of the draft with both sides trimmed.
func (d CardDraft) Normalize() CardDraft {
	return CardDraft{
		Question: strings.TrimSpace(d.Question),
		Answer:   strings.TrimSpace(d.Answer),
	}
}

// Complete reports whether both sides are non-empty after trimming.
func (d CardDraft) Complete() bool {
	n := d.Normalize()
	return n.Question != "" && n.Answer != ""
}

// CompleteDrafts trims every draft and keeps only the complete ones,
// preserving order.
func CompleteDrafts(drafts []CardDraft) []CardDraft {
	kept := make([]CardDraft, 0, len(drafts))
	for _, d := range drafts {
		n := d.Normalize()
		if n.Question == "" || n.Answer == "" {
			continue
		}
		kept = append(kept, n)
	}
	return kept
}

// Card is a flashcard that belongs to exactly one deck.
type Card struct {
	ID        uuid.UUID `json:"id"`
	DeckID    uuid.UUID `json:"deck_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CardView is a card with the owning deck's name resolved.
// DeckName is empty when the deck no longer exists.
type CardView struct {
	Card
	DeckName string `json:"deck"` // empty when the deck is gone; deck names are never empty
}

// CardPatch holds a partial update. Nil fields are left unchanged.
type CardPatch struct {
	Question *string
	Answer   *string
}

// Empty reports whether the patch changes nothing.
func (p CardPatch) Empty() bool {
	return p.Question == nil && p.Answer == nil
}

// NewCard creates a new Card in the given deck from a draft.
// The draft is trimmed before validation.
func NewCard(deckID uuid.UUID, draft CardDraft) (*Card, error) {
	n := draft.Normalize()
	now := time.Now().UTC()
	card := &Card{
		ID:        uuid.New(),
		DeckID:    deckID,
		Question:  n.Question,
		Answer:    n.Answer,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if strings.TrimSpace(c.Question) == "" {
		return ErrCardQuestionEmpty
	}

	if strings.TrimSpace(c.Answer) == "" {
		return ErrCardAnswerEmpty
	}

	return nil
}

// Apply updates the card with the patch and bumps UpdatedAt.
// Provided fields are trimmed; if the result is invalid the card is left
// untouched and the validation error is returned.
func (c *Card) Apply(patch CardPatch) error {
	updated := *c
	if patch.Question != nil {
		updated.Question = strings.TrimSpace(*patch.Question)
	}
	if patch.Answer != nil {
		updated.Answer = strings.TrimSpace(*patch.Answer)
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*c = updated
	return nil
}
