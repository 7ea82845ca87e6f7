package vcs

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/arthur-debert/svnrelease/pkg/logging"
	"github.com/rs/zerolog"
)

// Result is the captured outcome of one command.
type Result struct {
	Stdout string
	Stderr string
}

// Runner executes version control commands.
type Runner struct {
	logger zerolog.Logger

	// Stdin and Prompts are the operator's terminal for RunInteractive.
	// A nil Prompts keeps stderr captured only.
	Stdin   io.Reader
	Prompts io.Writer
}

// NewRunner creates a runner logging under component and attached to the
// process terminal for interactive commands.
func NewRunner(component string) *Runner {
	return &Runner{
		logger:  logging.GetLogger(component),
		Stdin:   os.Stdin,
		Prompts: os.Stderr,
	}
}

// Run executes binary with args in dir with no input. A non-zero exit is
// returned as an ErrVcs error that still wraps the *exec.ExitError.
func (r *Runner) Run(ctx context.Context, dir, binary string, args ...string) (Result, error) {
	return r.run(ctx, false, dir, binary, args...)
}

// RunInteractive is Run for commands that may ask the operator something,
// such as a password or whether to trust a server certificate. The command
// reads r.Stdin and its stderr is copied to r.Prompts as it is written.
func (r *Runner) RunInteractive(ctx context.Context, dir, binary string, args ...string) (Result, error) {
	return r.run(ctx, true, dir, binary, args...)
}

func (r *Runner) run(ctx context.Context, interactive bool, dir, binary string, args ...string) (Result, error) {
	logging.LogCommand(r.logger, binary, args)

	cmd := exec.CommandContext(ctx, binary, args...)
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return Result{}, errors.Wrapf(err, errors.ErrVcs, "working directory does not exist: %s", dir)
		}
		cmd.Dir = dir
	}
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if interactive {
		cmd.Stdin = r.Stdin
		if r.Prompts != nil {
			cmd.Stderr = io.MultiWriter(&stderr, r.Prompts)
		}
	}

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		r.logger.Debug().
			Err(err).
			Str("command", binary).
			Strs("args", args).
			Str("stderr", result.Stderr).
			Msg("Command failed")

		return result, errors.Wrapf(err, errors.ErrVcs, "%s %s failed", filepath.Base(binary), subcommand(args)).
			WithDetail("dir", dir).
			WithDetail("stderr", strings.TrimSpace(result.Stderr))
	}

	r.logger.Trace().Str("command", binary).Str("stdout", result.Stdout).Msg("Command succeeded")
	return result, nil
}

// IsExitError reports whether err came from the command exiting non-zero,
// as opposed to the command not running at all.
func IsExitError(err error) bool {
	var exitErr *exec.ExitError
	return stderrors.As(err, &exitErr)
}

func subcommand(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}

// Binary resolves a client executable from a path setting. The setting may
// be blank (use name from PATH), a directory holding name, or the
// executable itself.
func Binary(setting, name string) string {
	setting = strings.TrimSpace(setting)
	if setting == "" {
		return name
	}
	if info, err := os.Stat(setting); err == nil && info.IsDir() {
		return filepath.Join(setting, name)
	}
	if strings.HasSuffix(setting, "/") || strings.HasSuffix(setting, string(filepath.Separator)) {
		return filepath.Join(setting, name)
	}
	return setting
}
