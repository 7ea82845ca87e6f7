package vcs

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/svnrelease/pkg/types"
)

// Svn drives the mirror repository.
type Svn struct {
	binary   string
	username string
	runner   *Runner
}

var _ types.MirrorRepo = (*Svn)(nil)

// NewSvn returns an Svn client; pathSetting is the svn-path setting and
// username is passed to every command when non-empty.
func NewSvn(pathSetting, username string) *Svn {
	return &Svn{
		binary:   Binary(pathSetting, "svn"),
		username: strings.TrimSpace(username),
		runner:   NewRunner("vcs.svn"),
	}
}

// TrunkURL returns the trunk URL of a repository root.
func TrunkURL(remoteURL string) string {
	return strings.TrimSuffix(remoteURL, "/") + "/trunk"
}

// TagURL returns the URL of tag under a repository root.
func TagURL(remoteURL, tag string) string {
	return strings.TrimSuffix(remoteURL, "/") + "/tags/" + tag
}

func (s *Svn) withUsername(args []string) []string {
	if s.username != "" {
		args = append([]string{args[0], "--username", s.username}, args[1:]...)
	}
	return args
}

func (s *Svn) run(ctx context.Context, dir string, args ...string) (Result, error) {
	return s.runner.Run(ctx, dir, s.binary, s.withUsername(args)...)
}

// remote runs a command that talks to the server, so svn may prompt for
// credentials or certificate trust on the operator's terminal.
func (s *Svn) remote(ctx context.Context, dir string, args ...string) (Result, error) {
	return s.runner.RunInteractive(ctx, dir, s.binary, s.withUsername(args)...)
}

// CheckTagAbsentRemotely returns true when tag does not exist yet.
func (s *Svn) CheckTagAbsentRemotely(ctx context.Context, remoteURL, tag string) (bool, error) {
	_, err := s.remote(ctx, "", "info", TagURL(remoteURL, tag))
	if err == nil {
		return false, nil
	}
	if IsExitError(err) {
		return true, nil
	}
	return false, err
}

// Checkout checks remoteURL out into targetDir.
func (s *Svn) Checkout(ctx context.Context, remoteURL, targetDir string) error {
	_, err := s.remote(ctx, "", "checkout", remoteURL, targetDir)
	return err
}

// Status returns the working copy status of workingDir.
func (s *Svn) Status(ctx context.Context, workingDir string) ([]types.StatusEntry, error) {
	res, err := s.run(ctx, workingDir, "status")
	if err != nil {
		return nil, err
	}
	return ParseStatus(res.Stdout), nil
}

// Add schedules path for addition.
func (s *Svn) Add(ctx context.Context, workingDir, path string) error {
	_, err := s.run(ctx, workingDir, "add", pegSafe(path))
	return err
}

// Delete schedules path for deletion.
func (s *Svn) Delete(ctx context.Context, workingDir, path string) error {
	_, err := s.run(ctx, workingDir, "delete", "--force", pegSafe(path))
	return err
}

// Commit commits the working copy.
func (s *Svn) Commit(ctx context.Context, workingDir, message string) error {
	_, err := s.remote(ctx, workingDir, "commit", "-m", message)
	return err
}

// CopyTrunkToTag creates tag as a server side copy of trunk.
func (s *Svn) CopyTrunkToTag(ctx context.Context, remoteURL, tag, message string) error {
	_, err := s.remote(ctx, "", "copy", TrunkURL(remoteURL), TagURL(remoteURL, tag), "-m", message)
	return err
}

// pegSafe strips a trailing "/" and appends "@" to paths containing "@" so
// svn does not read the suffix as a peg revision.
func pegSafe(path string) string {
	path = strings.TrimSuffix(filepath.FromSlash(path), string(filepath.Separator))
	if strings.Contains(path, "@") {
		path += "@"
	}
	return path
}

// ParseStatus parses svn status output. The first column is the status code
// and the rest of the line, trimmed, is the path.
func ParseStatus(out string) []types.StatusEntry {
	var entries []types.StatusEntry
	for _, line := range strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n") {
		if len(line) < 2 {
			continue
		}
		path := strings.TrimSpace(line[1:])
		if path == "" {
			continue
		}
		entries = append(entries, types.StatusEntry{Code: line[0], Path: filepath.ToSlash(path)})
	}
	return entries
}
