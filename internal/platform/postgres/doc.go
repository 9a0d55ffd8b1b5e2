// Package postgres implements the deck and flashcard stores defined in
// internal/store on top of PostgreSQL, and embeds the goose migrations
// that create their schema.
package postgres
