package staging

import (
	"path/filepath"

	"github.com/arthur-debert/svnrelease/pkg/config"
	"github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/arthur-debert/svnrelease/pkg/types"
)

// ApplyDeletions removes the DeleteFiles and DeleteDirs entries from the
// workspace. Entries that do not exist are skipped; the removed entries are
// returned in configuration order.
func ApplyDeletions(fsys types.FS, rc *types.ReleaseContext) (files, dirs []string, err error) {
	for _, name := range config.List(rc.Setting(config.KeyDeleteFiles)) {
		path := filepath.Join(rc.WorkspaceDir, filepath.FromSlash(name))
		info, statErr := fsys.Stat(path)
		if statErr != nil || !info.Mode().IsRegular() {
			continue
		}
		if err := fsys.Remove(path); err != nil {
			return files, dirs, errors.Wrapf(err, errors.ErrStaging, "failed to delete file %s", name)
		}
		files = append(files, name)
	}

	for _, name := range config.List(rc.Setting(config.KeyDeleteDirs)) {
		path := filepath.Join(rc.WorkspaceDir, filepath.FromSlash(name))
		info, statErr := fsys.Stat(path)
		if statErr != nil || !info.IsDir() {
			continue
		}
		if err := fsys.RemoveAll(path); err != nil {
			return files, dirs, errors.Wrapf(err, errors.ErrStaging, "failed to delete directory %s", name)
		}
		dirs = append(dirs, name)
	}

	return files, dirs, nil
}
