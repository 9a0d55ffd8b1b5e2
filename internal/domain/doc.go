// Package domain contains the core business entities of the study service:
// decks, flashcards, and the question/answer drafts that flow between the
// generation pipeline and the card store. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
