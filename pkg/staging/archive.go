package staging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/arthur-debert/svnrelease/pkg/syncdiff"
	"github.com/klauspost/compress/zip"
)

// Extract unpacks the zip archive at archivePath into dest and returns the
// extracted paths in tree form (slash separated, directories with a trailing
// "/"). Every entry is read through once before anything is written so a
// corrupt archive leaves dest untouched.
func Extract(archivePath, dest string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStaging, "failed to open archive %s", archivePath).
			WithDetail("archive", archivePath)
	}
	defer r.Close()

	if len(r.File) == 0 {
		return nil, errors.Newf(errors.ErrStaging, "archive %s has no entries", archivePath).
			WithDetail("archive", archivePath)
	}

	if err := verify(r.File); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStaging, "archive %s failed the consistency check", archivePath).
			WithDetail("archive", archivePath)
	}

	var paths []string
	for _, f := range r.File {
		rel, err := entryPath(dest, f.Name)
		if err != nil {
			return nil, err
		}
		if rel == "" {
			continue
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(filepath.Join(dest, rel), 0755); err != nil {
				return nil, errors.Wrapf(err, errors.ErrStaging, "failed to create %s", rel)
			}
			paths = append(paths, syncdiff.Normalize(rel, true))
			continue
		}

		if err := writeEntry(f, filepath.Join(dest, rel)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrStaging, "failed to extract %s", rel)
		}
		paths = append(paths, syncdiff.Normalize(rel, false))
	}

	return syncdiff.WithParents(paths), nil
}

// Entries lists the paths the archive at archivePath would extract, in the
// same form as Extract returns them, without writing anything.
func Entries(archivePath string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStaging, "failed to open archive %s", archivePath).
			WithDetail("archive", archivePath)
	}
	defer r.Close()

	var paths []string
	for _, f := range r.File {
		rel, err := entryPath(archivePath, f.Name)
		if err != nil {
			return nil, err
		}
		if rel != "" {
			paths = append(paths, syncdiff.Normalize(rel, f.FileInfo().IsDir()))
		}
	}
	return syncdiff.WithParents(paths), nil
}

// verify reads every entry to the end, which checks its CRC-32.
func verify(files []*zip.File) error {
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		_, err = io.Copy(io.Discard, rc)
		closeErr := rc.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			return closeErr
		}
	}
	return nil
}

// entryPath returns the OS relative path of a zip entry, rejecting entries
// that would land outside dest. The archive root itself maps to "".
func entryPath(dest, name string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(strings.TrimSuffix(name, "/")))
	if rel == "." {
		return "", nil
	}
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrStaging, "archive entry %q escapes %s", name, dest).
			WithDetail("entry", name)
	}
	return rel, nil
}

// writeEntry writes a file entry. Symlink entries become regular files
// holding the link target.
func writeEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
