package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"absolute", "/tmp/x/y", []string{"/", "tmp", "x", "y"}},
		{"root", "/", []string{"/"}},
		{"relative", "x/y", []string{"x", "y"}},
		{"trailing_slash", "/tmp/x/", []string{"/", "tmp", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPath(tt.in))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()

	t.Run("creates_missing", func(t *testing.T) {
		result, err := ensureDir(filepath.Join(dir, "fresh"))
		require.NoError(t, err)
		assert.Equal(t, ensureCreated, result)
		assert.DirExists(t, filepath.Join(dir, "fresh"))
	})

	t.Run("already_present", func(t *testing.T) {
		result, _ := ensureDir(dir)
		assert.Equal(t, ensureAlreadyPresent, result)
	})

	t.Run("file_collision", func(t *testing.T) {
		file := filepath.Join(dir, "occupied")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		result, err := ensureDir(file)
		assert.Equal(t, ensureAlreadyPresent, result)
		assert.Error(t, err)
	})

	t.Run("under_file_collision", func(t *testing.T) {
		file := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		// mkdir below a regular file fails with ENOTDIR, still advisory
		result, err := ensureDir(filepath.Join(file, "sub"))
		assert.Equal(t, ensureAlreadyPresent, result)
		assert.Error(t, err)
	})
}

func TestProvisionAncestors(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c")

	provisionAncestors(target, 0o700, unsetOwner, zerolog.Nop())

	for _, sub := range []string{
		filepath.Join(dir, "a"),
		filepath.Join(dir, "a", "b"),
		filepath.Join(dir, "a", "b", "c"),
	} {
		info, err := os.Stat(sub)
		require.NoError(t, err)
		require.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	}
}

func TestProvisionAncestorsIdempotent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.Chmod(target, 0o755))

	provisionAncestors(target, 0o700, unsetOwner, zerolog.Nop())

	// Pre-existing levels keep their original bits.
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}
