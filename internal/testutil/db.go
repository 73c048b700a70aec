// Package testutil holds helpers shared by package tests
package testutil

import (
	"context"
	"testing"

	"github.com/thenoetrevino/lineage/internal/database"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// TestAppKey carries a prepared *app.App into CLI commands under test
const TestAppKey ContextKey = "testApp"

// TestUID is the user every CLI test runs as
const TestUID = "test-user"

// SetupTestRepo creates a migrated in-memory database
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	repo := database.NewRepository(db)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}
