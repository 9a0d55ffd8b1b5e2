package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/studybuddy-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint, ColumnName: "question"}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "no rows", err: sql.ErrNoRows, expected: store.ErrNotFound},
		{name: "unique violation", err: pgError(uniqueViolationCode, "decks_pkey"), expected: store.ErrDuplicate},
		{name: "foreign key violation", err: pgError(foreignKeyViolationCode, "fk"), expected: store.ErrInvalidEntity},
		{name: "check violation", err: pgError(checkViolationCode, "ck"), expected: store.ErrInvalidEntity},
		{name: "not null violation", err: pgError(notNullViolationCode, ""), expected: store.ErrInvalidEntity},
		{name: "invalid text", err: pgError(invalidTextRepCode, ""), expected: store.ErrInvalidEntity},
		{
			name:     "wrapped pg error",
			err:      fmt.Errorf("exec: %w", pgError(uniqueViolationCode, "decks_pkey")),
			expected: store.ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)
			assert.ErrorIs(t, mapped, tt.expected)
		})
	}

	assert.Nil(t, MapError(nil))

	plain := errors.New("network down")
	assert.Equal(t, plain, MapError(plain))
	other := pgError("40001", "")
	assert.Equal(t, other, MapError(other))
}

func TestViolationHelpers(t *testing.T) {
	assert.True(t, IsUniqueViolation(pgError(uniqueViolationCode, "")))
	assert.False(t, IsUniqueViolation(errors.New("x")))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("w: %w", pgError(foreignKeyViolationCode, ""))))
	assert.False(t, IsForeignKeyViolation(pgError(uniqueViolationCode, "")))
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, checkRowsAffected(sqlmock.NewResult(0, 1), store.ErrCardNotFound))
	assert.ErrorIs(t, checkRowsAffected(sqlmock.NewResult(0, 0), store.ErrCardNotFound), store.ErrCardNotFound)

	failing := sqlmock.NewErrorResult(errors.New("driver does not support RowsAffected"))
	err := checkRowsAffected(failing, store.ErrCardNotFound)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrCardNotFound)
}
