package release

import (
	"context"
	"os"

	"github.com/arthur-debert/svnrelease/pkg/config"
	"github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/arthur-debert/svnrelease/pkg/filesystem"
	"github.com/arthur-debert/svnrelease/pkg/logging"
	"github.com/arthur-debert/svnrelease/pkg/types"
	"github.com/arthur-debert/svnrelease/pkg/ui"
	"github.com/arthur-debert/svnrelease/pkg/ui/confirmations"
	"github.com/arthur-debert/svnrelease/pkg/vcs"
	"github.com/rs/zerolog"
)

// ConfirmationLiteral is the exact answer that approves the commit.
const ConfirmationLiteral = "YES"

// State is the terminal state of a run.
type State string

const (
	StateCommitted State = "committed"
	StateAborted   State = "aborted"
)

// Params are the per-invocation inputs of a release.
type Params struct {
	// SourcePath is the resolved source repository root
	SourcePath string

	// Tag is the version being released
	Tag string

	// VcsUsername overrides the svn-username setting when non-empty
	VcsUsername string

	// ConfigDir is the directory the default settings layer is read from
	ConfigDir string

	// Overrides are settings given on the command line
	Overrides map[string]string

	// Environ replaces the process environment for the env settings layer
	Environ []string
}

// Result describes how a run ended.
type Result struct {
	State     State
	Completed []string
	Diff      types.FileSetDiff
	Context   *types.ReleaseContext
}

// Options configures a Pipeline. Zero values select the production
// implementations.
type Options struct {
	FileSystem types.FS
	Confirmer  types.Confirmer
	Versions   types.VersionProvider
	Reporter   *ui.Reporter

	// Vcs replaces the process backed git and svn clients
	Vcs types.VcsExecutor
}

// Pipeline runs releases.
type Pipeline struct {
	fs        types.FS
	confirmer types.Confirmer
	versions  types.VersionProvider
	reporter  *ui.Reporter
	vcs       types.VcsExecutor
	logger    zerolog.Logger
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		fs:        opts.FileSystem,
		confirmer: opts.Confirmer,
		versions:  opts.Versions,
		reporter:  opts.Reporter,
		vcs:       opts.Vcs,
		logger:    logging.GetLogger("release"),
	}
	if p.fs == nil {
		p.fs = filesystem.NewOS()
	}
	if p.confirmer == nil {
		p.confirmer = confirmations.NewConsoleDialog(os.Stdin, os.Stdout)
	}
	if p.reporter == nil {
		p.reporter = ui.Discard()
	}
	return p
}

// run is the state of one invocation.
type run struct {
	p      *Pipeline
	params Params
	rc     *types.ReleaseContext
	source types.SourceRepo
	mirror types.MirrorRepo
	plan   types.FileSetDiff
}

// Run executes every stage in order and stops at the first failure. The
// workspace and scratch file are removed and the starting working
// directory restored before Run returns.
func (p *Pipeline) Run(ctx context.Context, params Params) (*Result, error) {
	home, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to determine working directory")
	}

	rc := &types.ReleaseContext{
		SourcePath:  params.SourcePath,
		Tag:         params.Tag,
		VcsUsername: params.VcsUsername,
		HomeDir:     home,
	}
	r := &run{p: p, params: params, rc: rc}
	result := &Result{State: StateAborted, Context: rc}

	defer p.Cleanup(rc)

	p.logger.Info().Str("source", rc.SourcePath).Str("tag", rc.Tag).Msg("Starting release")

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			result.Diff = r.diff()
			return result, errors.Wrap(err, errors.ErrUserAbort, "release interrupted")
		}

		done := logging.LogOperationStart(p.logger, st.name)
		err := st.fn(r, ctx)
		done()
		if err != nil {
			p.logger.Error().Err(err).Str("stage", st.name).Msg("Release stage failed")
			result.Diff = r.diff()
			return result, err
		}
		result.Completed = append(result.Completed, st.name)
	}

	result.State = StateCommitted
	result.Diff = r.diff()
	p.reporter.Info("[success]Released %s %s.[/success]", rc.Slug, rc.Tag)
	p.logger.Info().Str("slug", rc.Slug).Str("tag", rc.Tag).Msg("Release committed")
	return result, nil
}

func (r *run) diff() types.FileSetDiff {
	return types.FileSetDiff{
		ToAdd:              r.rc.Added,
		ToDelete:           r.rc.Deleted,
		ToCommitAsModified: r.rc.ModifiedFiles,
	}
}

// clients returns the version control clients for rc, built from its
// settings unless a replacement was configured.
func (p *Pipeline) clients(rc *types.ReleaseContext) (types.SourceRepo, types.MirrorRepo) {
	if p.vcs != nil {
		return p.vcs, p.vcs
	}
	return vcs.NewGit(rc.Setting(config.KeyGitPath)),
		vcs.NewSvn(rc.Setting(config.KeySvnPath), rc.VcsUsername)
}

// Cleanup removes the workspace and scratch file recorded on rc and
// returns to rc.HomeDir. It is safe to call more than once; failures are
// logged, never returned.
func (p *Pipeline) Cleanup(rc *types.ReleaseContext) {
	if rc.WorkspaceDir != "" {
		if err := removeWorkspace(p.fs, rc.WorkspaceDir); err != nil {
			p.logger.Warn().Err(err).Str("dir", rc.WorkspaceDir).Msg("Failed to remove workspace")
			p.reporter.Warn("Could not remove temporary dir %s", rc.WorkspaceDir)
		} else {
			p.logger.Debug().Str("dir", rc.WorkspaceDir).Msg("Removed workspace")
			rc.WorkspaceDir = ""
		}
	}

	if rc.ScratchFile != "" {
		if err := p.fs.Remove(rc.ScratchFile); err != nil && !os.IsNotExist(err) {
			p.logger.Warn().Err(err).Str("file", rc.ScratchFile).Msg("Failed to remove scratch file")
		} else {
			rc.ScratchFile = ""
		}
	}

	if rc.HomeDir != "" {
		if err := os.Chdir(rc.HomeDir); err != nil {
			p.logger.Warn().Err(err).Str("dir", rc.HomeDir).Msg("Failed to restore working directory")
		}
	}
}
