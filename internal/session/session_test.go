package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskmate/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "state", "session.json"))
}

func TestStore_MissingFile(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, Empty(), s.Load())
	assert.False(t, s.IsLoggedIn())
	_, ok := s.CurrentUserID()
	assert.False(t, ok)
	assert.Nil(t, s.CurrentUserInfo())
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	user := &models.User{ID: 3, Name: "Alice", Email: "alice@example.com", PasswordHash: "secret-hash"}

	require.NoError(t, s.Save(user))

	assert.True(t, s.IsLoggedIn())
	id, ok := s.CurrentUserID()
	require.True(t, ok)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, &Info{UserID: 3, UserName: "Alice", UserEmail: "alice@example.com"}, s.CurrentUserInfo())

	// The password hash never reaches the file
	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-hash")

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, true, raw["is_logged_in"])
	assert.Equal(t, float64(3), raw["user_id"])
}

func TestStore_Logout(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(&models.User{ID: 1, Name: "Alice", Email: "alice@example.com"}))

	require.NoError(t, s.Logout())

	_, err := os.Stat(s.Path)
	require.NoError(t, err, "logout keeps the file")
	assert.Equal(t, Empty(), s.Load())
	assert.False(t, s.IsLoggedIn())
	assert.Nil(t, s.CurrentUserInfo())
}

func TestStore_MalformedFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path), 0o755))
	require.NoError(t, os.WriteFile(s.Path, []byte("{not json"), 0o600))

	assert.Equal(t, Empty(), s.Load())
	_, ok := s.CurrentUserID()
	assert.False(t, ok)
}

func TestStore_LoggedInWithoutID(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path), 0o755))
	require.NoError(t, os.WriteFile(s.Path, []byte(`{"is_logged_in": true}`), 0o600))

	assert.True(t, s.IsLoggedIn())
	_, ok := s.CurrentUserID()
	assert.False(t, ok)
	assert.Nil(t, s.CurrentUserInfo())
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)

	// Clearing a store that never saved is fine
	require.NoError(t, s.Clear())

	require.NoError(t, s.Save(&models.User{ID: 1}))
	require.NoError(t, s.Clear())

	_, err := os.Stat(s.Path)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, Empty(), s.Load())
}
