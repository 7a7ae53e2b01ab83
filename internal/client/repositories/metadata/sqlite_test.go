package metadata

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/dbx"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteStore_PutGet(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "token", "eyJhbGciOi.payload.sig"))

	v, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "eyJhbGciOi.payload.sig", v)
}

func TestSQLiteStore_GetAbsent(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	v, ok, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSQLiteStore_EmptyValueIsPresent(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", ""))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestSQLiteStore_PutOverwrites(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", "old"))
	require.NoError(t, s.Put(ctx, "k", "new"))

	v, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestSQLiteStore_Delete(t *testing.T) {
	tests := []struct {
		name    string
		delete  []string
		remains map[string]bool
	}{
		{name: "no keys", delete: nil, remains: map[string]bool{"a": true, "b": true, "c": true}},
		{name: "one key", delete: []string{"a"}, remains: map[string]bool{"a": false, "b": true, "c": true}},
		{name: "several keys", delete: []string{"a", "c"}, remains: map[string]bool{"a": false, "b": true, "c": false}},
		{name: "absent keys are ignored", delete: []string{"zzz", "b"}, remains: map[string]bool{"a": true, "b": false, "c": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSQLiteStore(setupDB(t))
			ctx := context.Background()
			for _, k := range []string{"a", "b", "c"} {
				require.NoError(t, s.Put(ctx, k, "v-"+k))
			}

			require.NoError(t, s.Delete(ctx, tt.delete...))
			// Idempotent.
			require.NoError(t, s.Delete(ctx, tt.delete...))

			for k, want := range tt.remains {
				_, ok, err := s.Get(ctx, k)
				require.NoError(t, err)
				assert.Equal(t, want, ok, "key %s", k)
			}
		})
	}
}

func TestSQLiteStore_RollbackDiscardsWrites(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := NewSQLiteStore(tx).Put(ctx, "token", "abc"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, ok, err := NewSQLiteStore(db).Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_ClosedDBErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, _, err := s.Get(ctx, "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `read metadata "token"`)

	err = s.Put(ctx, "token", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `write metadata "token"`)

	err = s.Delete(ctx, "token", "token_saved_at")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete metadata [token token_saved_at]")
}
