package writer

import (
	"io/fs"
	"os"
	"os/user"
	"strconv"

	"github.com/arthur-debert/atomicwriter/pkg/errors"
)

// owner holds resolved numeric ownership; -1 leaves that side unchanged,
// matching the chown(2) convention.
type owner struct {
	uid int
	gid int
}

// unsetOwner applies no ownership change at all.
var unsetOwner = owner{uid: -1, gid: -1}

// lookupOwner resolves user and group names to numeric IDs. Either may be
// empty (left unchanged) or numeric (used as-is).
func lookupOwner(userName, groupName string) (owner, error) {
	own := unsetOwner

	if userName != "" {
		u, err := user.Lookup(userName)
		if err != nil {
			id, convErr := strconv.Atoi(userName)
			if convErr != nil {
				return unsetOwner, errors.Wrapf(err, errors.ErrOwnerLookup, "unknown user %q", userName)
			}
			own.uid = id
		} else {
			own.uid, _ = strconv.Atoi(u.Uid)
		}
	}

	if groupName != "" {
		g, err := user.LookupGroup(groupName)
		if err != nil {
			id, convErr := strconv.Atoi(groupName)
			if convErr != nil {
				return unsetOwner, errors.Wrapf(err, errors.ErrOwnerLookup, "unknown group %q", groupName)
			}
			own.gid = id
		} else {
			own.gid, _ = strconv.Atoi(g.Gid)
		}
	}

	return own, nil
}

// applyProperties sets the permission bits and, when ownership was
// configured, the owner of path.
func applyProperties(path string, perms fs.FileMode, own owner) error {
	if err := os.Chmod(path, perms); err != nil {
		return errors.Wrapf(err, errors.ErrAttrApply, "cannot chmod %s", path)
	}
	if own.uid != -1 || own.gid != -1 {
		if err := os.Chown(path, own.uid, own.gid); err != nil {
			return errors.Wrapf(err, errors.ErrAttrApply, "cannot chown %s", path)
		}
	}
	return nil
}
