package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/planforge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t), 0)

	v, found, err := repo.Get(context.Background(), KeyRoadmap)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, v)
}

func TestKVRepo_SetOverwrites(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t), 0)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyTheme, `"light"`))
	require.NoError(t, repo.Set(ctx, KeyTheme, `"dark"`))

	v, found, err := repo.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `"dark"`, v)

	used, err := repo.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(`"dark"`)), used)
}

func TestKVRepo_UnknownKey(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t), 0)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Set(ctx, "sessions", "{}"), ErrUnknownKey)
	_, _, err := repo.Get(ctx, "sessions")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.ErrorIs(t, repo.Delete(ctx, "sessions"), ErrUnknownKey)
}

func TestKVRepo_QuotaKeepsPreviousValue(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t), 20)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyChecklist, "[]"))
	require.NoError(t, repo.Set(ctx, KeyRoadmap, strings.Repeat("x", 18)))

	err := repo.Set(ctx, KeyChecklist, "[1,2]")
	require.ErrorIs(t, err, ErrQuotaExceeded)

	v, _, err := repo.Get(ctx, KeyChecklist)
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	// Replacing a value only counts the new size against the limit.
	require.NoError(t, repo.Set(ctx, KeyRoadmap, strings.Repeat("y", 18)))
}

func TestKVRepo_KeysInNamespaceOrder(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t), 0)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyTheme, `"dark"`))
	require.NoError(t, repo.Set(ctx, KeyCanvas, `{}`))
	require.NoError(t, repo.Set(ctx, KeyRoadmap, `[]`))
	require.NoError(t, repo.Delete(ctx, KeyRoadmap))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Key{KeyCanvas, KeyTheme}, keys)
}

func TestKVRepo_DeleteMissingIsNoop(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t), 0)
	assert.NoError(t, repo.Delete(context.Background(), KeyOrgChart))
}
