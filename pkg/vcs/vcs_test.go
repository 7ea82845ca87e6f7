package vcs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/arthur-debert/svnrelease/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient writes a shell script that records its arguments, prints
// stdout and exits with exitCode.
func fakeClient(t *testing.T, stdout string, exitCode int) (binary, argsLog string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake clients are shell scripts")
	}

	dir := t.TempDir()
	argsLog = filepath.Join(dir, "args.log")
	outFile := filepath.Join(dir, "stdout.txt")
	require.NoError(t, os.WriteFile(outFile, []byte(stdout), 0644))

	script := "#!/bin/sh\n" +
		"for a in \"$@\"; do printf '%s\\n' \"$a\" >> '" + argsLog + "'; done\n" +
		"printf -- '---\\n' >> '" + argsLog + "'\n" +
		"cat '" + outFile + "'\n" +
		"echo 'stderr text' >&2\n" +
		"exit " + string(rune('0'+exitCode)) + "\n"

	binary = filepath.Join(dir, "client")
	require.NoError(t, os.WriteFile(binary, []byte(script), 0755))
	return binary, argsLog
}

func invocations(t *testing.T, argsLog string) [][]string {
	t.Helper()
	data, err := os.ReadFile(argsLog)
	require.NoError(t, err)

	var calls [][]string
	var current []string
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		if line == "---" {
			calls = append(calls, current)
			current = nil
			continue
		}
		current = append(current, line)
	}
	return calls
}

func TestParseStatus(t *testing.T) {
	out := "?       new.php\r\n" +
		"M       plugin.php\n" +
		"!       gone.php\n" +
		"?       assets\\img\n" +
		"\n"

	entries := ParseStatus(out)

	require.Len(t, entries, 4)
	assert.Equal(t, types.StatusEntry{Code: '?', Path: "new.php"}, entries[0])
	assert.Equal(t, types.StatusEntry{Code: 'M', Path: "plugin.php"}, entries[1])
	assert.Equal(t, byte('!'), entries[2].Code)
	assert.Empty(t, ParseStatus(""))
}

func TestBinary(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "svn", Binary("", "svn"))
	assert.Equal(t, filepath.Join(dir, "svn"), Binary(dir, "svn"))
	assert.Equal(t, filepath.Join("/opt/svn/bin", "svn"), Binary("/opt/svn/bin/", "svn"))
	assert.Equal(t, "/usr/local/bin/svn-1.14", Binary("/usr/local/bin/svn-1.14", "svn"))
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "https://plugins.svn.example/foo/trunk", TrunkURL("https://plugins.svn.example/foo/"))
	assert.Equal(t, "https://plugins.svn.example/foo/tags/1.0", TagURL("https://plugins.svn.example/foo", "1.0"))
}

func TestPegSafe(t *testing.T) {
	assert.Equal(t, "icon@2x.png@", pegSafe("icon@2x.png"))
	assert.Equal(t, filepath.FromSlash("old/dir"), pegSafe("old/dir/"))
	assert.Equal(t, "plain.php", pegSafe("plain.php"))
}

func TestSvnCommands(t *testing.T) {
	ctx := context.Background()
	workDir := t.TempDir()

	t.Run("status_parses_output", func(t *testing.T) {
		binary, argsLog := fakeClient(t, "?       new.php\nM       plugin.php\n", 0)
		svn := NewSvn(binary, "alice")

		entries, err := svn.Status(ctx, workDir)
		require.NoError(t, err)
		assert.Equal(t, []types.StatusEntry{{Code: '?', Path: "new.php"}, {Code: 'M', Path: "plugin.php"}}, entries)
		assert.Equal(t, [][]string{{"status", "--username", "alice"}}, invocations(t, argsLog))
	})

	t.Run("mutating_commands", func(t *testing.T) {
		binary, argsLog := fakeClient(t, "", 0)
		svn := NewSvn(binary, "")

		require.NoError(t, svn.Checkout(ctx, TrunkURL("https://svn.example/foo"), workDir))
		require.NoError(t, svn.Add(ctx, workDir, "icon@2x.png"))
		require.NoError(t, svn.Delete(ctx, workDir, "old/"))
		require.NoError(t, svn.Commit(ctx, workDir, "Updates for 1.0 release."))
		require.NoError(t, svn.CopyTrunkToTag(ctx, "https://svn.example/foo", "1.0", "Tagged v1.0."))

		assert.Equal(t, [][]string{
			{"checkout", "https://svn.example/foo/trunk", workDir},
			{"add", "icon@2x.png@"},
			{"delete", "--force", "old"},
			{"commit", "-m", "Updates for 1.0 release."},
			{"copy", "https://svn.example/foo/trunk", "https://svn.example/foo/tags/1.0", "-m", "Tagged v1.0."},
		}, invocations(t, argsLog))
	})

	t.Run("tag_absent_when_info_fails", func(t *testing.T) {
		binary, _ := fakeClient(t, "", 1)
		absent, err := NewSvn(binary, "").CheckTagAbsentRemotely(ctx, "https://svn.example/foo", "1.0")
		require.NoError(t, err)
		assert.True(t, absent)
	})

	t.Run("tag_present_when_info_succeeds", func(t *testing.T) {
		binary, _ := fakeClient(t, "Path: 1.0\n", 0)
		absent, err := NewSvn(binary, "").CheckTagAbsentRemotely(ctx, "https://svn.example/foo", "1.0")
		require.NoError(t, err)
		assert.False(t, absent)
	})

	t.Run("failure_is_vcs_error", func(t *testing.T) {
		binary, _ := fakeClient(t, "", 1)
		err := NewSvn(binary, "").Commit(ctx, workDir, "msg")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrVcs))
		assert.Contains(t, err.Error(), "commit failed")
		assert.Equal(t, "stderr text", errors.GetErrorDetails(err)["stderr"])
	})

	t.Run("missing_binary_is_not_tag_absent", func(t *testing.T) {
		svn := NewSvn(filepath.Join(t.TempDir(), "no-such-svn"), "")
		_, err := svn.CheckTagAbsentRemotely(ctx, "https://svn.example/foo", "1.0")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrVcs))
	})
}

func TestRunnerInput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	ctx := context.Background()
	script := `printf 'Password: ' >&2; if read x; then echo "got $x"; else echo "no input"; fi`

	t.Run("run_has_no_input", func(t *testing.T) {
		var prompts bytes.Buffer
		r := NewRunner("test")
		r.Stdin = strings.NewReader("secret\n")
		r.Prompts = &prompts

		res, err := r.Run(ctx, "", "sh", "-c", script)
		require.NoError(t, err)
		assert.Equal(t, "no input\n", res.Stdout)
		assert.Empty(t, prompts.String())
	})

	t.Run("interactive_reads_operator_input", func(t *testing.T) {
		var prompts bytes.Buffer
		r := NewRunner("test")
		r.Stdin = strings.NewReader("secret\n")
		r.Prompts = &prompts

		res, err := r.RunInteractive(ctx, "", "sh", "-c", script)
		require.NoError(t, err)
		assert.Equal(t, "got secret\n", res.Stdout)
		assert.Equal(t, "Password: ", res.Stderr)
		assert.Equal(t, "Password: ", prompts.String())
	})

	t.Run("svn_remote_commands_are_interactive", func(t *testing.T) {
		dir := t.TempDir()
		answers := filepath.Join(dir, "answers.log")
		binary := filepath.Join(dir, "svn")
		require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\nread x || x=none\necho \"$1 $x\" >> '"+answers+"'\n"), 0755))

		svn := NewSvn(binary, "")
		svn.runner.Prompts = &bytes.Buffer{}
		answer := func() { svn.runner.Stdin = strings.NewReader("yes\n") }

		workDir := t.TempDir()
		answer()
		_, err := svn.CheckTagAbsentRemotely(ctx, "https://svn.example/foo", "1.0")
		require.NoError(t, err)
		answer()
		require.NoError(t, svn.Add(ctx, workDir, "x.php"))
		answer()
		require.NoError(t, svn.Checkout(ctx, "https://svn.example/foo/trunk", workDir))
		answer()
		require.NoError(t, svn.Commit(ctx, workDir, "msg"))
		answer()
		require.NoError(t, svn.CopyTrunkToTag(ctx, "https://svn.example/foo", "1.0", "msg"))

		data, err := os.ReadFile(answers)
		require.NoError(t, err)
		assert.Equal(t, "info yes\nadd none\ncheckout yes\ncommit yes\ncopy yes\n", string(data))
	})
}

func TestGitCommands(t *testing.T) {
	ctx := context.Background()
	repo := t.TempDir()

	t.Run("commands", func(t *testing.T) {
		binary, argsLog := fakeClient(t, "", 0)
		git := NewGit(binary)

		require.NoError(t, git.Pull(ctx, repo))
		exists, err := git.TagExists(ctx, repo, "1.0")
		require.NoError(t, err)
		assert.True(t, exists)
		require.NoError(t, git.CreateTag(ctx, repo, "1.0", "Tagged v1.0."))
		require.NoError(t, git.ArchiveTag(ctx, repo, "1.0", "/tmp/out.zip"))

		assert.Equal(t, [][]string{
			{"pull"},
			{"rev-parse", "--verify", "--quiet", "refs/tags/1.0"},
			{"tag", "-a", "1.0", "-m", "Tagged v1.0."},
			{"archive", "--format=zip", "--output=/tmp/out.zip", "1.0"},
		}, invocations(t, argsLog))
	})

	t.Run("missing_tag", func(t *testing.T) {
		binary, _ := fakeClient(t, "", 1)
		exists, err := NewGit(binary).TagExists(ctx, repo, "9.9")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("missing_repo_dir", func(t *testing.T) {
		binary, _ := fakeClient(t, "", 0)
		err := NewGit(binary).Pull(ctx, filepath.Join(repo, "missing"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrVcs))
	})
}
