package out_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	accountout "neurocalm/internal/modules/account/adapter/out"
)

func newMemoryStore(t *testing.T) *accountout.SQLiteKeyValueStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	store := accountout.NewSQLiteKeyValueStore(db)
	require.NoError(t, store.InitTable(context.Background()))
	return store
}

func TestSQLiteKeyValueStoreUpsertAndDelete(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "registeredUsers")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "registeredUsers", "[]"))
	require.NoError(t, store.Set(ctx, "registeredUsers", `[{"email":"a@b.c"}]`))

	got, ok, err := store.Get(ctx, "registeredUsers")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"email":"a@b.c"}]`, got)

	require.NoError(t, store.Delete(ctx, "registeredUsers"))
	_, ok, err = store.Get(ctx, "registeredUsers")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteKeyValueStoreWithinRollsBack(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "currentUser", "before"))

	boom := errors.New("boom")
	err := store.Within(ctx, func(ctx context.Context) error {
		require.NoError(t, store.Set(ctx, "currentUser", "after"))
		require.NoError(t, store.Set(ctx, "registeredUsers", "[]"))
		got, _, err := store.Get(ctx, "currentUser")
		require.NoError(t, err)
		require.Equal(t, "after", got)
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, _, err := store.Get(ctx, "currentUser")
	require.NoError(t, err)
	require.Equal(t, "before", got)
	_, ok, err := store.Get(ctx, "registeredUsers")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteKeyValueStoreWithinCommitsNested(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	err := store.Within(ctx, func(ctx context.Context) error {
		if err := store.Set(ctx, "currentUser", "outer"); err != nil {
			return err
		}
		return store.Within(ctx, func(ctx context.Context) error {
			return store.Set(ctx, "authenticated-flag", "true")
		})
	})
	require.NoError(t, err)

	flag, ok, err := store.Get(ctx, "authenticated-flag")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "true", flag)
}
