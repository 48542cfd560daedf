package postgres_test

import (
	"testing"

	"fulfillment/internal/adapters/out/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	t.Run("should default sslmode to disable", func(t *testing.T) {
		dsn := postgres.DSN("db", "5432", "app", "secret", "fulfillment", "")

		assert.Equal(t, "host=db port=5432 user=app password=secret dbname=fulfillment sslmode=disable", dsn)
	})

	t.Run("should keep an explicit sslmode", func(t *testing.T) {
		dsn := postgres.DSN("db", "5432", "app", "secret", "fulfillment", "require")

		assert.Contains(t, dsn, "sslmode=require")
	})
}

func TestConnect(t *testing.T) {
	t.Run("should reject an empty DSN", func(t *testing.T) {
		_, err := postgres.Connect(t.Context(), "  ", postgres.Options{})

		require.Error(t, err)
	})
}
