package release

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/svnrelease/pkg/types"
)

// removeWorkspace deletes dir. Working copy metadata can be read-only on
// some platforms, so a failed removal is retried once after making the tree
// writable.
func removeWorkspace(fsys types.FS, dir string) error {
	if err := fsys.RemoveAll(dir); err == nil {
		return nil
	}

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		mode := os.FileMode(0o600)
		if d.IsDir() {
			mode = 0o700
		}
		_ = os.Chmod(path, mode)
		return nil
	})
	return fsys.RemoveAll(dir)
}
