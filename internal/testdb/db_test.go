package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseURL(t *testing.T) {
	t.Run("test url wins", func(t *testing.T) {
		t.Setenv(EnvTestDatabaseURL, "postgres://test@localhost/studybuddy_test")
		t.Setenv(EnvDatabaseURL, "postgres://app@localhost/studybuddy")

		assert.Equal(t, "postgres://test@localhost/studybuddy_test", DatabaseURL())
	})

	t.Run("falls back to DATABASE_URL", func(t *testing.T) {
		t.Setenv(EnvTestDatabaseURL, "")
		t.Setenv(EnvDatabaseURL, "postgres://app@localhost/studybuddy")

		assert.Equal(t, "postgres://app@localhost/studybuddy", DatabaseURL())
	})

	t.Run("unset", func(t *testing.T) {
		t.Setenv(EnvTestDatabaseURL, "")
		t.Setenv(EnvDatabaseURL, "")

		assert.Empty(t, DatabaseURL())
	})
}
