package staging

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/arthur-debert/svnrelease/pkg/logging"
	"github.com/arthur-debert/svnrelease/pkg/syncdiff"
	"github.com/arthur-debert/svnrelease/pkg/types"
	"github.com/rs/zerolog"
)

// Result reports what Stage did.
type Result struct {
	Extracted     []string
	Replaced      []string
	RemovedFiles  []string
	RemovedDirs   []string
	ReadmeWritten bool
}

// Engine stages tagged source snapshots into a workspace.
type Engine struct {
	fs     types.FS
	source types.SourceRepo
	mirror types.MirrorRepo
	logger zerolog.Logger
}

// New returns an Engine that exports snapshots through source.
func New(fsys types.FS, source types.SourceRepo) *Engine {
	return &Engine{
		fs:     fsys,
		source: source,
		logger: logging.GetLogger("staging"),
	}
}

// WithMirror makes the engine schedule the deletion of replaced paths with
// mirror before removing them from the workspace.
func (e *Engine) WithMirror(mirror types.MirrorRepo) *Engine {
	e.mirror = mirror
	return e
}

// Stage materializes the snapshot of rc.Tag into rc.WorkspaceDir, applies
// the cleanup rules, writes the readme and sets rc.StagedFiles. The
// workspace and scratch file must already be allocated.
func (e *Engine) Stage(ctx context.Context, rc *types.ReleaseContext) (*Result, error) {
	if rc.WorkspaceDir == "" || rc.ScratchFile == "" {
		return nil, errors.New(errors.ErrInternal, "workspace is not allocated")
	}

	if err := e.source.ArchiveTag(ctx, rc.SourcePath, rc.Tag, rc.ScratchFile); err != nil {
		return nil, err
	}

	replaced, err := e.clearReplaced(ctx, rc)
	if err != nil {
		return nil, err
	}

	extracted, err := Extract(rc.ScratchFile, rc.WorkspaceDir)
	if err != nil {
		return nil, err
	}
	e.logger.Debug().Int("entries", len(extracted)).Str("workspace", rc.WorkspaceDir).Msg("Extracted snapshot")

	result := &Result{Extracted: extracted, Replaced: replaced}

	result.RemovedFiles, result.RemovedDirs, err = ApplyDeletions(e.fs, rc)
	if err != nil {
		return nil, err
	}

	result.ReadmeWritten, err = GenerateReadme(e.fs, rc)
	if err != nil {
		return nil, err
	}

	staged := syncdiff.Prune(extracted, result.RemovedFiles, result.RemovedDirs)
	if result.ReadmeWritten {
		staged = append(staged, syncdiff.ReadmeFile)
	}
	rc.StagedFiles = syncdiff.WithParents(staged)

	return result, nil
}

// clearReplaced removes the mirror paths whose kind changes in the snapshot,
// so extraction can write the new kind in their place. It sets rc.Replaced.
func (e *Engine) clearReplaced(ctx context.Context, rc *types.ReleaseContext) ([]string, error) {
	entries, err := Entries(rc.ScratchFile)
	if err != nil {
		return nil, err
	}

	replaced := syncdiff.KindConflicts(entries, rc.MirrorFiles)
	for _, p := range replaced {
		e.logger.Debug().Str("path", p).Msg("Path changes kind, replacing")
		if e.mirror != nil {
			if err := e.mirror.Delete(ctx, rc.WorkspaceDir, p); err != nil {
				return nil, err
			}
		}
		target := filepath.Join(rc.WorkspaceDir, filepath.FromSlash(strings.TrimSuffix(p, "/")))
		if err := e.fs.RemoveAll(target); err != nil {
			return nil, errors.Wrapf(err, errors.ErrStaging, "failed to remove %s", p)
		}
	}
	rc.Replaced = replaced
	return replaced, nil
}
