package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/atomicwriter/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertFileContent checks that path exists and holds exactly want.
func AssertFileContent(t *testing.T, path string, want []byte) {
	t.Helper()

	got, err := os.ReadFile(path)
	require.NoError(t, err, "reading %s", path)
	assert.Equal(t, want, got, "content of %s", path)
}

// AssertFileMode checks that path's permission bits equal want exactly.
func AssertFileMode(t *testing.T, path string, want fs.FileMode) {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err, "stat %s", path)
	assert.Equal(t, want, info.Mode().Perm(), "permission bits of %s", path)
}

// AssertDirMode checks that path is a directory whose permission bits equal
// want exactly.
func AssertDirMode(t *testing.T, path string, want fs.FileMode) {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err, "stat %s", path)
	require.True(t, info.IsDir(), "%s should be a directory", path)
	assert.Equal(t, want, info.Mode().Perm(), "permission bits of %s", path)
}

// RequireErrorCode checks that err carries the given structured error code.
func RequireErrorCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()

	require.Error(t, err)
	require.True(t, errors.IsErrorCode(err, code),
		"error %v should have code %s, got %s", err, code, errors.GetErrorCode(err))
}

// AssertNoStagingLeftover checks that dir contains no staging directories
// left behind by a writer operation.
func AssertNoStagingLeftover(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "reading %s", dir)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"),
			"staging directory %s should have been removed", filepath.Join(dir, entry.Name()))
	}
}
