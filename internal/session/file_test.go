package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masego-dev/clubctl/internal/model"
)

func tempStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return NewFileStore(path), path
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, _ := tempStore(t)

	err := store.Save(Session{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		Role:         model.RolePlayer,
	})
	require.NoError(t, err)

	sess, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "access-1", sess.AccessToken)
	assert.Equal(t, "refresh-1", sess.RefreshToken)
	assert.Equal(t, model.RolePlayer, sess.Role)
}

func TestFileStoreSurvivesRestart(t *testing.T) {
	store, path := tempStore(t)
	require.NoError(t, store.Save(Session{AccessToken: "a", RefreshToken: "r", Role: model.RoleMember}))

	// A fresh store over the same file sees the same session
	reopened := NewFileStore(path)
	sess, ok := reopened.Current()
	require.True(t, ok)
	assert.Equal(t, "a", sess.AccessToken)
}

func TestFileStoreMissingFile(t *testing.T) {
	store, _ := tempStore(t)

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestFileStoreCorruptFile(t *testing.T) {
	store, path := tempStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestFileStoreSetAccessToken(t *testing.T) {
	store, _ := tempStore(t)
	require.NoError(t, store.Save(Session{AccessToken: "old", RefreshToken: "r", Role: model.RoleUmpire}))

	require.NoError(t, store.SetAccessToken("new"))

	sess, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "new", sess.AccessToken)
	assert.Equal(t, "r", sess.RefreshToken)
	assert.Equal(t, model.RoleUmpire, sess.Role)
}

func TestFileStoreClear(t *testing.T) {
	store, path := tempStore(t)
	require.NoError(t, store.Save(Session{AccessToken: "a", RefreshToken: "r"}))

	require.NoError(t, store.Clear())

	_, ok := store.Current()
	assert.False(t, ok)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-cleared session is fine
	assert.NoError(t, store.Clear())
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Current()
	assert.False(t, ok)

	require.NoError(t, store.Save(Session{AccessToken: "a", RefreshToken: "r", Role: model.RolePlayer}))
	sess, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "a", sess.AccessToken)

	require.NoError(t, store.SetAccessToken("b"))
	sess, _ = store.Current()
	assert.Equal(t, "b", sess.AccessToken)

	require.NoError(t, store.Clear())
	_, ok = store.Current()
	assert.False(t, ok)
}
