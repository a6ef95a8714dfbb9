// Package paths provides path expansion and resolution for atomicwriter.
//
// Destinations may be given as absolute, relative, or ~-prefixed paths; the
// writer resolves them exactly once, before any filesystem mutation, to an
// absolute symlink-free form. Resolution follows symlinks on the longest
// existing prefix of the path, so a destination whose ancestors do not exist
// yet still resolves cleanly.
package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/atomicwriter/pkg/errors"
)

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment
// variable. If both fail, it returns an error rather than using dangerous
// defaults.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv("HOME")
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrPathResolve, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// ExpandHome expands the ~ character to the user's home directory.
// Returns an error if home directory cannot be determined.
func ExpandHome(path string) (string, error) {
	if path == "~" {
		return GetHomeDirectory()
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		homeDir, err := GetHomeDirectory()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrPathResolve, "cannot expand ~")
		}
		return homeDir + path[1:], nil
	}

	return path, nil
}

// Resolve expands and canonicalizes a destination path: ~ is expanded, the
// path is made absolute, and symlinks are resolved on the longest existing
// prefix. The trailing non-existing components are kept as given.
func Resolve(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "destination path is empty")
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPathResolve, "cannot make %q absolute", path)
	}

	return resolveExistingPrefix(abs), nil
}

// resolveExistingPrefix resolves symlinks on the deepest prefix of abs that
// exists and rejoins the remaining components unchanged.
func resolveExistingPrefix(abs string) string {
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}

	prefix := abs
	var rest []string
	for {
		parent := filepath.Dir(prefix)
		if parent == prefix {
			// Reached the root without finding an existing prefix
			return abs
		}
		rest = append([]string{filepath.Base(prefix)}, rest...)
		prefix = parent

		if resolved, err := filepath.EvalSymlinks(prefix); err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...)
		}
	}
}
