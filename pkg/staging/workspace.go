package staging

import (
	"os"

	"github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/arthur-debert/svnrelease/pkg/types"
)

// WorkspacePrefix prefixes the names of ephemeral workspace resources.
const WorkspacePrefix = "SVNR"

// Allocate creates an empty workspace directory and a scratch file under
// rc.TempRoot and records both on rc as soon as they exist.
func Allocate(rc *types.ReleaseContext) error {
	root := rc.TempRoot
	if root == "" {
		root = os.TempDir()
	}

	dir, err := os.MkdirTemp(root, WorkspacePrefix)
	if err != nil {
		return errors.Wrapf(err, errors.ErrStaging, "failed to create workspace under %s", root)
	}
	rc.WorkspaceDir = dir

	f, err := os.CreateTemp(root, WorkspacePrefix+"*.zip")
	if err != nil {
		return errors.Wrapf(err, errors.ErrStaging, "failed to create scratch file under %s", root)
	}
	rc.ScratchFile = f.Name()
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrStaging, "failed to close scratch file %s", rc.ScratchFile)
	}
	return nil
}
