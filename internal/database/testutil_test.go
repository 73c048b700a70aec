package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestRepo opens a migrated in-memory database
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err, "failed to create test database")

	repo := NewRepository(db)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}
