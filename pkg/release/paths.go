package release

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/svnrelease/pkg/errors"
)

// ResolveSourcePath turns the path argument into an absolute, symlink free
// directory path. A bare name is taken relative to the parent of base;
// paths starting with ".", a separator or a drive letter are taken as
// given, relative ones against base.
func ResolveSourcePath(arg, base string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return "", errors.New(errors.ErrPath, "path to git repo is empty")
	}

	p := arg
	if isBare(p) {
		p = filepath.Join("..", p)
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}

	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPath, "path to git repo not found: %s", arg).
			WithDetail("path", p)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPath, "path to git repo not found: %s", arg).
			WithDetail("path", resolved)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrPath, "path to git repo is not a directory: %s", arg).
			WithDetail("path", resolved)
	}

	return filepath.Abs(resolved)
}

// isBare reports whether p names a directory without saying where it is.
func isBare(p string) bool {
	if strings.ContainsAny(p[:1], `./\`) {
		return false
	}
	return len(p) < 2 || p[1] != ':'
}
