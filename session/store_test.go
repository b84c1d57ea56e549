package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "session.yaml")

	t.Run("Missing file is logged out", func(t *testing.T) {
		s, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, LoggedOut, s.UserID())
		assert.False(t, s.LoggedIn())
	})

	t.Run("SetUserID persists across opens", func(t *testing.T) {
		s, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, s.SetUserID(7))
		assert.True(t, s.LoggedIn())

		reopened, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, 7, reopened.UserID())
	})

	t.Run("Clear logs out", func(t *testing.T) {
		s, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, s.Clear())

		reopened, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, LoggedOut, reopened.UserID())
	})

	t.Run("Corrupt file is an error", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "session.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("user_id: [unclosed"), 0644))

		_, err := Open(bad)
		assert.Error(t, err)
	})
}
