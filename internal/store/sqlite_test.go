package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/brisatech/backoffice/pkg/models"
	"github.com/brisatech/backoffice/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.db")
	s, err := New(context.Background(), path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_SaveLoadClear(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())

	u := &models.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: models.RoleAdmin}
	require.NoError(t, s.Save("tok-abc", u))

	assert.True(t, s.Authenticated())
	assert.Equal(t, "tok-abc", s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, "u1", s.User().ID)

	require.NoError(t, s.Clear())
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	first, err := New(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Save("tok", &models.User{ID: "u1", Name: "Ana"}))
	require.NoError(t, first.Close())

	second, err := New(ctx, path, nil)
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, "tok", second.Token())
	require.NotNil(t, second.User())
	assert.Equal(t, "Ana", second.User().Name)
}

func TestSQLiteStore_SetUserKeepsToken(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.SetUser(&models.User{ID: "u1"}), session.ErrNotAuthenticated)

	require.NoError(t, s.Save("tok", &models.User{ID: "u1", Name: "Ana"}))
	require.NoError(t, s.SetUser(&models.User{ID: "u1", Name: "Ana Maria"}))

	assert.Equal(t, "tok", s.Token())
	assert.Equal(t, "Ana Maria", s.User().Name)
}

func TestSQLiteStore_CorruptedUserReadsAsAbsent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("tok", &models.User{ID: "u1"}))

	ctx := context.Background()
	_, err := s.conn.Exec(ctx, `UPDATE session SET value = ? WHERE key = ?`, "{not json", keyUser)
	require.NoError(t, err)

	assert.Nil(t, s.User(), "corrupted cache must read as absent, not fail")
	assert.Equal(t, "tok", s.Token(), "token survives a corrupted user blob")
}

func TestSQLiteStore_PartialStateIsAnonymous(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("tok", &models.User{ID: "u1"}))

	ctx := context.Background()
	_, err := s.conn.Exec(ctx, `DELETE FROM session WHERE key = ?`, keyUser)
	require.NoError(t, err)

	assert.Empty(t, s.Token(), "token without user is a partial write")
	assert.False(t, s.Authenticated())
}
