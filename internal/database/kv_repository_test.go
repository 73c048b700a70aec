package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepo_GetMissing(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)

	value, ok, err := repo.Get(context.Background(), "familyTree_nobody")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestKVRepo_SetOverwrites(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "settings_u1", `{"theme":"light"}`))
	require.NoError(t, repo.Set(ctx, "settings_u1", `{"theme":"dark"}`))

	value, ok, err := repo.Get(ctx, "settings_u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"theme":"dark"}`, value)
}

func TestKVRepo_DeleteMany(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Set(ctx, key, key))
	}

	require.NoError(t, repo.Delete(ctx, "a", "c", "not-there"))

	keys, err := repo.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestKVRepo_KeysPrefixIsLiteral(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, key := range []string{"familyTree_u1", "familyTree_u2", "familyTreeXu3", "settings_u1"} {
		require.NoError(t, repo.Set(ctx, key, "{}"))
	}

	keys, err := repo.Keys(ctx, "familyTree_")
	require.NoError(t, err)
	assert.Equal(t, []string{"familyTree_u1", "familyTree_u2"}, keys)
}

func TestInitDB_PersistsAcrossConnections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	db, err := InitDB(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, NewRepository(db).Set(ctx, "k", "v"))
	require.NoError(t, db.Close())

	db, err = InitDB(ctx, dir)
	require.NoError(t, err)
	repo := NewRepository(db)
	defer func() { _ = repo.Close() }()

	value, ok, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
	assert.FileExists(t, filepath.Join(dir, DBFileName))
}
