package writer

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/atomicwriter/pkg/errors"
	"github.com/arthur-debert/atomicwriter/pkg/logging"
	"github.com/arthur-debert/atomicwriter/pkg/paths"
)

// Default permission bits, matching u=rwx,g=rx,o= for directories and
// u=rw,o-all for files.
const (
	DefaultDirPerms  fs.FileMode = 0o750
	DefaultFilePerms fs.FileMode = 0o600
)

// Options configures a single Write invocation.
//
// Zero-valued permission fields fall back to the package defaults; use
// DefaultOptions to start from an explicit baseline. User and Group are
// account names (numeric IDs are accepted) applied to the destination file
// and to any directories the operation creates; empty means "leave ownership
// alone".
type Options struct {
	Overwrite bool
	DirPerms  fs.FileMode
	FilePerms fs.FileMode
	User      string
	Group     string
}

// DefaultOptions returns the default configuration: no overwrite, 0750
// directories, 0600 files, ownership untouched.
func DefaultOptions() Options {
	return Options{
		DirPerms:  DefaultDirPerms,
		FilePerms: DefaultFilePerms,
	}
}

// Write atomically writes a file to destination.
//
// The destination may be absolute, relative, or ~-prefixed; it is resolved
// once, before any filesystem mutation. fn receives a path inside a private
// staging directory sibling to the destination and is solely responsible for
// creating and writing it. If fn returns nil the staged file is published to
// the destination with an atomic rename; if fn returns an error, publishing
// is skipped and that error is returned unchanged. Either way the staging
// directory and everything in it is removed before Write returns.
//
// With Overwrite false, an existing destination fails the publish with a
// DESTINATION_EXISTS error naming the path; with Overwrite true the
// destination is atomically replaced. A concurrent reader never observes a
// partially written destination.
func Write(destination string, opts Options, fn func(staging string) error) error {
	logger := logging.GetLogger("writer")

	if fn == nil {
		return errors.New(errors.ErrInvalidInput, "write callback is nil")
	}
	if opts.DirPerms == 0 {
		opts.DirPerms = DefaultDirPerms
	}
	if opts.FilePerms == 0 {
		opts.FilePerms = DefaultFilePerms
	}

	resolved, err := paths.Resolve(destination)
	if err != nil {
		return err
	}

	// Resolve ownership up front so an unknown account fails before any
	// filesystem mutation.
	own, err := lookupOwner(opts.User, opts.Group)
	if err != nil {
		return err
	}

	parent := filepath.Dir(resolved)
	provisionAncestors(parent, opts.DirPerms, own, logger)

	base := filepath.Base(resolved)
	stagingDir, err := os.MkdirTemp(parent, base+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, errors.ErrStagingCreate, "cannot create staging directory in %s", parent)
	}
	defer func() {
		if rmErr := os.RemoveAll(stagingDir); rmErr != nil {
			logger.Warn().Err(rmErr).Str("staging", stagingDir).Msg("Failed to remove staging directory")
		}
	}()

	logger.Trace().Str("staging", stagingDir).Str("destination", resolved).Msg("Staging directory created")

	staging := filepath.Join(stagingDir, base)
	if err := fn(staging); err != nil {
		logger.Debug().Err(err).Str("destination", resolved).Msg("Write callback failed, discarding staged file")
		return err
	}

	if opts.Overwrite {
		err = replaceAtomic(staging, resolved)
	} else {
		err = moveAtomic(staging, resolved)
	}
	if err != nil {
		return err
	}

	logger.Debug().Str("destination", resolved).Bool("overwrite", opts.Overwrite).Msg("Staged file published")

	return applyProperties(resolved, opts.FilePerms, own)
}

// WriteFile atomically writes data to destination. It is a convenience
// wrapper over Write that creates the staged file, writes data, and syncs it
// to disk before publishing.
func WriteFile(destination string, data []byte, opts Options) error {
	return Write(destination, opts, func(staging string) error {
		f, err := os.OpenFile(staging, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	})
}
