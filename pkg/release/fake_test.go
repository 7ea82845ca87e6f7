package release_test

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/arthur-debert/svnrelease/pkg/filesystem"
	"github.com/arthur-debert/svnrelease/pkg/syncdiff"
	"github.com/arthur-debert/svnrelease/pkg/types"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// fakeVcs stands in for both git and svn. The mirror trunk is a map of
// slash paths to content; directories end in "/".
type fakeVcs struct {
	t *testing.T

	tagExists       bool
	mirrorTagAbsent bool
	snapshot        map[string]string
	mirror          map[string]string
	failOn          string

	calls           []string
	committedReadme string
}

var _ types.VcsExecutor = (*fakeVcs)(nil)

func newFakeVcs(t *testing.T) *fakeVcs {
	return &fakeVcs{
		t:               t,
		tagExists:       true,
		mirrorTagAbsent: true,
		snapshot:        map[string]string{},
		mirror:          map[string]string{},
	}
}

func (f *fakeVcs) record(method string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(method+" "+strings.Join(args, " ")))
	if f.failOn == method {
		return errors.Newf(errors.ErrVcs, "%s failed", strings.ToLower(method))
	}
	return nil
}

// methods returns the recorded method names, without arguments.
func (f *fakeVcs) methods() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i], _, _ = strings.Cut(c, " ")
	}
	return out
}

func (f *fakeVcs) Pull(ctx context.Context, repoPath string) error {
	return f.record("Pull", repoPath)
}

func (f *fakeVcs) TagExists(ctx context.Context, repoPath, tag string) (bool, error) {
	if err := f.record("TagExists", tag); err != nil {
		return false, err
	}
	return f.tagExists, nil
}

func (f *fakeVcs) CreateTag(ctx context.Context, repoPath, tag, message string) error {
	return f.record("CreateTag", tag, message)
}

func (f *fakeVcs) ArchiveTag(ctx context.Context, repoPath, tag, outFile string) error {
	if err := f.record("ArchiveTag", tag); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range f.snapshot {
		fw, err := w.Create(name)
		require.NoError(f.t, err)
		if !strings.HasSuffix(name, "/") {
			_, err = fw.Write([]byte(content))
			require.NoError(f.t, err)
		}
	}
	require.NoError(f.t, w.Close())
	return os.WriteFile(outFile, buf.Bytes(), 0644)
}

func (f *fakeVcs) CheckTagAbsentRemotely(ctx context.Context, remoteURL, tag string) (bool, error) {
	if err := f.record("CheckTagAbsentRemotely", remoteURL, tag); err != nil {
		return false, err
	}
	return f.mirrorTagAbsent, nil
}

func (f *fakeVcs) Checkout(ctx context.Context, remoteURL, targetDir string) error {
	if err := f.record("Checkout", remoteURL); err != nil {
		return err
	}
	writeTree(f.t, targetDir, f.mirror)
	writeTree(f.t, targetDir, map[string]string{".svn/": "", ".svn/wc.db": "sqlite"})
	return nil
}

// Status reports unversioned paths (only the topmost one of a new subtree)
// and versioned files whose content changed.
func (f *fakeVcs) Status(ctx context.Context, workingDir string) ([]types.StatusEntry, error) {
	if err := f.record("Status"); err != nil {
		return nil, err
	}

	tree, err := syncdiff.ListTree(filesystem.NewOS(), workingDir)
	require.NoError(f.t, err)

	var entries []types.StatusEntry
	for _, p := range tree {
		if strings.HasPrefix(p, ".svn/") {
			continue
		}
		content, versioned := f.mirror[p]
		if !versioned {
			parent := path.Dir(strings.TrimSuffix(p, "/"))
			if _, ok := f.mirror[parent+"/"]; parent != "." && !ok {
				continue
			}
			entries = append(entries, types.StatusEntry{Code: types.StatusUntracked, Path: strings.TrimSuffix(p, "/")})
			continue
		}
		if strings.HasSuffix(p, "/") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(workingDir, filepath.FromSlash(p)))
		require.NoError(f.t, err)
		if string(data) != content {
			entries = append(entries, types.StatusEntry{Code: types.StatusModified, Path: p})
		}
	}
	return entries, nil
}

func (f *fakeVcs) Add(ctx context.Context, workingDir, p string) error {
	return f.record("Add", p)
}

func (f *fakeVcs) Delete(ctx context.Context, workingDir, p string) error {
	return f.record("Delete", p)
}

func (f *fakeVcs) Commit(ctx context.Context, workingDir, message string) error {
	if err := f.record("Commit", message); err != nil {
		return err
	}
	if data, err := os.ReadFile(filepath.Join(workingDir, syncdiff.ReadmeFile)); err == nil {
		f.committedReadme = string(data)
	}
	return nil
}

func (f *fakeVcs) CopyTrunkToTag(ctx context.Context, remoteURL, tag, message string) error {
	return f.record("CopyTrunkToTag", remoteURL, tag, message)
}

func writeTree(t *testing.T, root string, tree map[string]string) {
	t.Helper()
	for name, content := range tree {
		p := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(p, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

// fakeConfirmer answers every request with answer and keeps the last one.
type fakeConfirmer struct {
	answer bool
	err    error
	last   *types.ConfirmationRequest
}

func (c *fakeConfirmer) Confirm(_ context.Context, req types.ConfirmationRequest) (bool, error) {
	c.last = &req
	return c.answer, c.err
}

// gateConfirmer closes reached when the confirmation prompt is shown, then
// defers to next.
type gateConfirmer struct {
	reached chan struct{}
	next    types.Confirmer
}

func (c *gateConfirmer) Confirm(ctx context.Context, req types.ConfirmationRequest) (bool, error) {
	close(c.reached)
	return c.next.Confirm(ctx, req)
}
