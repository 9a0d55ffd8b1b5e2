// Package store defines interfaces for deck and flashcard persistence.
// These interfaces keep the service layer independent of the database
// used underneath; see internal/platform/postgres for the implementation.
package store
