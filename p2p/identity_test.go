package p2p

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureIdentity(t *testing.T) {
	t.Run("persisted", func(t *testing.T) {
		dir := t.TempDir()
		key, err := EnsureIdentity(dir)
		require.NoError(t, err)
		require.FileExists(t, filepath.Join(dir, keyFilename))

		loaded, err := EnsureIdentity(dir)
		require.NoError(t, err)
		require.True(t, key.Equals(loaded))
	})
	t.Run("ephemeral", func(t *testing.T) {
		first, err := EnsureIdentity("")
		require.NoError(t, err)
		second, err := EnsureIdentity("")
		require.NoError(t, err)
		require.False(t, first.Equals(second))
	})
	t.Run("corrupted", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, keyFilename), []byte("zz"), 0o600))
		_, err := EnsureIdentity(dir)
		require.Error(t, err)
	})
}
