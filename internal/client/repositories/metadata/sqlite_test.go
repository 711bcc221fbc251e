package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/dbx"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "credentials")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", "abc"))

	v, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
}

func TestGet_Missing_ReturnsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "credentials")

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "credentials")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "old"))
	require.NoError(t, r.Set(ctx, "k", "new"))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestScopesAreIsolated(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	creds := NewSQLiteRepository(db, "credentials")
	other := NewSQLiteRepository(db, "prefs")

	require.NoError(t, creds.Set(ctx, "username", "ann"))
	require.NoError(t, other.Set(ctx, "username", "bob"))

	m, err := creds.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"username": "ann"}, m)

	require.NoError(t, creds.Clear(ctx))

	m, err = creds.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)

	v, err := other.Get(ctx, "username")
	require.NoError(t, err)
	assert.Equal(t, "bob", v)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "credentials")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", "1"))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestWithTx_RollbackDiscardsWrites(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) error {
		r := NewSQLiteRepository(tx, "credentials")
		require.NoError(t, r.Set(ctx, "token", "t"))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	v, err := NewSQLiteRepository(db, "credentials").Get(ctx, "token")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestClosedDB_ReturnsErrors(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())
	r := NewSQLiteRepository(db, "credentials")
	ctx := context.Background()

	_, err := r.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, r.Set(ctx, "k", "v"))
	assert.Error(t, r.Delete(ctx, "k"))
	assert.Error(t, r.Clear(ctx))
	_, err = r.List(ctx)
	assert.Error(t, err)
}
