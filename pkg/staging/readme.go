package staging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/svnrelease/pkg/config"
	"github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/arthur-debert/svnrelease/pkg/syncdiff"
	"github.com/arthur-debert/svnrelease/pkg/types"
)

// ConvertChangelog rewrites markdown "##" headings as "= heading =" lines.
// Both \n and \r\n line endings are accepted; output uses \n.
func ConvertChangelog(changelog string) string {
	lines := strings.Split(strings.ReplaceAll(changelog, "\r\n", "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, "##") {
			line = "= " + strings.TrimSpace(line[2:]) + " ="
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// GenerateReadme writes readme.txt at the workspace root from the readme
// template and changelog in the source tree. Without a template nothing is
// written and written is false.
func GenerateReadme(fsys types.FS, rc *types.ReleaseContext) (written bool, err error) {
	template, ok, err := readSourceFile(fsys, rc, rc.Setting(config.KeyReadmeTemplate))
	if err != nil || !ok {
		return false, err
	}
	readme := config.ReplacePlaceholders(template, rc.Placeholders)

	changelog, ok, err := readSourceFile(fsys, rc, rc.Setting(config.KeyChangelog))
	if err != nil {
		return false, err
	}
	if ok {
		readme += ConvertChangelog(config.ReplacePlaceholders(changelog, rc.Placeholders))
	}

	target := filepath.Join(rc.WorkspaceDir, syncdiff.ReadmeFile)
	if err := fsys.WriteFile(target, []byte(readme), 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrStaging, "failed to write %s", target)
	}
	return true, nil
}

// readSourceFile reads name relative to the source tree. A blank name or a
// missing file is reported with ok false.
func readSourceFile(fsys types.FS, rc *types.ReleaseContext, name string) (string, bool, error) {
	if strings.TrimSpace(name) == "" {
		return "", false, nil
	}
	path := filepath.Join(rc.SourcePath, filepath.FromSlash(name))
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, errors.ErrStaging, "failed to read %s", path)
	}
	return string(data), true, nil
}
