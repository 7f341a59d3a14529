package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/stq-dashboard-go/internal/database"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	sess := s.Get()
	assert.False(t, sess.IsAuthenticated)
	assert.Empty(t, sess.AccessToken)

	require.NoError(t, s.Set("access-1", "refresh-1"))
	sess = s.Get()
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "access-1", sess.AccessToken)
	assert.Equal(t, "refresh-1", sess.RefreshToken)

	// 只更新 access，refresh 保留
	require.NoError(t, s.Set("access-2", ""))
	sess = s.Get()
	assert.Equal(t, "access-2", sess.AccessToken)
	assert.Equal(t, "refresh-1", sess.RefreshToken)

	require.NoError(t, s.Clear())
	sess = s.Get()
	assert.False(t, sess.IsAuthenticated)
	assert.Empty(t, sess.AccessToken)
	assert.Empty(t, sess.RefreshToken)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "state.db")})
	require.NoError(t, err)
	defer db.Close()

	s, err := NewSQLiteStore(db)
	require.NoError(t, err)

	assert.False(t, s.Get().IsAuthenticated)

	require.NoError(t, s.Set("access-1", "refresh-1"))
	sess := s.Get()
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "access-1", sess.AccessToken)
	assert.Equal(t, "refresh-1", sess.RefreshToken)

	require.NoError(t, s.Set("access-2", ""))
	sess = s.Get()
	assert.Equal(t, "access-2", sess.AccessToken)
	assert.Equal(t, "refresh-1", sess.RefreshToken, "refresh-only update keeps the refresh token")

	require.NoError(t, s.Clear())
	assert.False(t, s.Get().IsAuthenticated)
}

func TestSQLiteStore_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	db, err := database.Open(database.Config{Path: path})
	require.NoError(t, err)

	s, err := NewSQLiteStore(db)
	require.NoError(t, err)
	require.NoError(t, s.Set("persisted-access", "persisted-refresh"))
	require.NoError(t, db.Close())

	// 重新打开同一个库，会话应当还原
	db, err = database.Open(database.Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	s, err = NewSQLiteStore(db)
	require.NoError(t, err)

	sess := s.Get()
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "persisted-access", sess.AccessToken)
	assert.Equal(t, "persisted-refresh", sess.RefreshToken)
}

func TestSQLiteStore_ClearIsDurable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	db, err := database.Open(database.Config{Path: path})
	require.NoError(t, err)

	s, err := NewSQLiteStore(db)
	require.NoError(t, err)
	require.NoError(t, s.Set("access", "refresh"))
	require.NoError(t, s.Clear())
	require.NoError(t, db.Close())

	db, err = database.Open(database.Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	s, err = NewSQLiteStore(db)
	require.NoError(t, err)
	assert.False(t, s.Get().IsAuthenticated)
}
