package writer

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
)

// ensureResult reports the outcome of a single ensureDir call.
type ensureResult int

const (
	ensureCreated ensureResult = iota
	ensureAlreadyPresent
	ensureFailed
)

// ensureDir creates a single directory level. "Already exists" and the
// collision/permission errors that show up when another actor provisioned the
// path first are reported as ensureAlreadyPresent; anything else is
// ensureFailed.
func ensureDir(path string) (ensureResult, error) {
	err := os.Mkdir(path, 0o777)
	if err == nil {
		return ensureCreated, nil
	}
	if stderrors.Is(err, fs.ErrExist) ||
		stderrors.Is(err, fs.ErrPermission) ||
		stderrors.Is(err, syscall.EISDIR) ||
		stderrors.Is(err, syscall.ENOTDIR) {
		return ensureAlreadyPresent, err
	}
	return ensureFailed, err
}

// provisionAncestors walks every ancestor of dir from shallowest to deepest,
// creating missing levels one at a time so each can receive its own
// permissions and ownership. Levels that already exist are left untouched:
// ownership takes only newly created structure into account. All failures
// here are advisory; a truly unusable parent surfaces later when the staging
// directory cannot be created.
func provisionAncestors(dir string, perms fs.FileMode, own owner, logger zerolog.Logger) {
	current := ""
	for _, part := range splitPath(dir) {
		current = filepath.Join(current, part)

		result, err := ensureDir(current)
		switch result {
		case ensureCreated:
			logger.Trace().Str("dir", current).Msg("Ancestor directory created")
			if propErr := applyProperties(current, perms, own); propErr != nil {
				logger.Debug().Err(propErr).Str("dir", current).Msg("Could not set properties on created directory")
			}
		case ensureAlreadyPresent:
			// Provisioned already, possibly by another actor
		case ensureFailed:
			logger.Debug().Err(err).Str("dir", current).Msg("Ancestor creation failed, continuing")
		}
	}
}

// splitPath breaks a cleaned path into its components, keeping the root
// separator as the first element for absolute paths.
func splitPath(path string) []string {
	sep := string(filepath.Separator)
	var parts []string
	if filepath.IsAbs(path) {
		parts = append(parts, sep)
	}
	for _, part := range strings.Split(filepath.Clean(path), sep) {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
