package vcs

import (
	"context"

	"github.com/arthur-debert/svnrelease/pkg/types"
)

// Git drives the source repository.
type Git struct {
	binary string
	runner *Runner
}

var _ types.SourceRepo = (*Git)(nil)

// NewGit returns a Git client; pathSetting is the git-path setting.
func NewGit(pathSetting string) *Git {
	return &Git{
		binary: Binary(pathSetting, "git"),
		runner: NewRunner("vcs.git"),
	}
}

// Pull updates the repository from its upstream.
func (g *Git) Pull(ctx context.Context, repoPath string) error {
	_, err := g.runner.Run(ctx, repoPath, g.binary, "pull")
	return err
}

// TagExists reports whether tag names a tag in the repository.
func (g *Git) TagExists(ctx context.Context, repoPath, tag string) (bool, error) {
	_, err := g.runner.Run(ctx, repoPath, g.binary, "rev-parse", "--verify", "--quiet", "refs/tags/"+tag)
	if err == nil {
		return true, nil
	}
	if IsExitError(err) {
		return false, nil
	}
	return false, err
}

// CreateTag creates an annotated tag at HEAD.
func (g *Git) CreateTag(ctx context.Context, repoPath, tag, message string) error {
	_, err := g.runner.Run(ctx, repoPath, g.binary, "tag", "-a", tag, "-m", message)
	return err
}

// ArchiveTag writes a zip archive of tag to outFile.
func (g *Git) ArchiveTag(ctx context.Context, repoPath, tag, outFile string) error {
	_, err := g.runner.Run(ctx, repoPath, g.binary, "archive", "--format=zip", "--output="+outFile, tag)
	return err
}
