package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/atomicwriter/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home, err := GetHomeDirectory()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare_tilde", "~", home},
		{"tilde_slash", "~/notes/todo.txt", filepath.Join(home, "notes", "todo.txt")},
		{"absolute_untouched", "/etc/hosts", "/etc/hosts"},
		{"relative_untouched", "notes/todo.txt", "notes/todo.txt"},
		{"tilde_user_untouched", "~other/file", "~other/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveEmptyPath(t *testing.T) {
	_, err := Resolve("")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestResolveRelative(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	got, err := Resolve("sub/file.txt")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "file.txt", filepath.Base(got))
}

func TestResolveNonExistingSuffix(t *testing.T) {
	dir := t.TempDir()

	got, err := Resolve(filepath.Join(dir, "a", "b", "file.txt"))
	require.NoError(t, err)

	// The existing prefix is canonicalized; the trailing components survive.
	resolvedDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(resolvedDir, "a", "b", "file.txt"), got)
}

func TestResolveFollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test requires unix")
	}

	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(real, 0o755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(real, link))

	got, err := Resolve(filepath.Join(link, "file.txt"))
	require.NoError(t, err)

	resolvedReal, err := filepath.EvalSymlinks(real)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(resolvedReal, "file.txt"), got)
}
