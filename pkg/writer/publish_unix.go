//go:build !windows

package writer

import (
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/arthur-debert/atomicwriter/pkg/errors"
)

// replaceAtomic atomically replaces destination with source, even when
// destination already exists. On POSIX systems rename(2) gives this for free
// because source and destination live on the same filesystem.
func replaceAtomic(source, destination string) error {
	if err := os.Rename(source, destination); err != nil {
		return errors.Wrapf(err, errors.ErrPublish, "cannot replace %s", destination)
	}
	return nil
}

// moveAtomic publishes source at destination, failing if destination already
// exists. link(2) makes the destination appear in a single step and refuses
// to clobber an existing entry; the source link is reaped with the staging
// directory.
func moveAtomic(source, destination string) error {
	if err := os.Link(source, destination); err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return errors.Newf(errors.ErrDestinationExists, "destination %s already exists", destination).
				WithDetail("destination", destination)
		}
		return errors.Wrapf(err, errors.ErrPublish, "cannot move staged file to %s", destination)
	}
	return nil
}
