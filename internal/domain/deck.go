package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDeckName is used when cards are saved without naming a deck.
const DefaultDeckName = "My First Deck"

// Deck-specific validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = errors.New("deck ID cannot be empty")

	// ErrDeckNameEmpty is returned when a deck name is empty after trimming.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")
)

// Deck is a named grouping of flashcards. The name is the human-facing
// lookup key; decks are created the first time a name is referenced.
type Deck struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDeck creates a new Deck with the given name.
// The name is trimmed; an empty name is rejected.
func NewDeck(name string) (*Deck, error) {
	deck := &Deck{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if strings.TrimSpace(d.Name) == "" {
		return ErrDeckNameEmpty
	}

	return nil
}

// ResolveDeckName returns the trimmed name, or DefaultDeckName when it is blank.
func ResolveDeckName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultDeckName
	}
	return name
}
