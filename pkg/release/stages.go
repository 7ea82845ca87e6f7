package release

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/arthur-debert/svnrelease/pkg/config"
	"github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/arthur-debert/svnrelease/pkg/staging"
	"github.com/arthur-debert/svnrelease/pkg/syncdiff"
	"github.com/arthur-debert/svnrelease/pkg/types"
	"github.com/arthur-debert/svnrelease/pkg/vcs"
)

// Stage names, in execution order.
const (
	StageResolveConfig       = "resolve-config"
	StageValidateSourceTag   = "validate-source-tag"
	StageValidateMirrorTag   = "validate-mirror-not-tagged"
	StageCheckoutMirrorTrunk = "checkout-mirror-trunk"
	StageStage               = "stage"
	StageReconcileAdd        = "reconcile-add"
	StageReconcileDelete     = "reconcile-delete"
	StageSummarizeModified   = "summarize-modified"
	StageConfirmWithOperator = "confirm"
	StageCommit              = "commit"
	StageTagMirror           = "tag-mirror"
)

type stage struct {
	name string
	fn   func(*run, context.Context) error
}

var stages = []stage{
	{StageResolveConfig, (*run).resolveConfig},
	{StageValidateSourceTag, (*run).validateSourceTag},
	{StageValidateMirrorTag, (*run).validateMirrorNotTagged},
	{StageCheckoutMirrorTrunk, (*run).checkoutMirrorTrunk},
	{StageStage, (*run).stage},
	{StageReconcileAdd, (*run).reconcileAdd},
	{StageReconcileDelete, (*run).reconcileDelete},
	{StageSummarizeModified, (*run).summarizeModified},
	{StageConfirmWithOperator, (*run).confirm},
	{StageCommit, (*run).commit},
	{StageTagMirror, (*run).tagMirror},
}

// StageNames lists the stages in execution order.
func StageNames() []string {
	names := make([]string, len(stages))
	for i, st := range stages {
		names[i] = st.name
	}
	return names
}

func (r *run) resolveConfig(ctx context.Context) error {
	rc := r.rc
	rep := r.p.reporter

	if strings.TrimSpace(rc.Tag) == "" {
		return errors.New(errors.ErrInvalidInput, "a tag to release is required")
	}
	info, err := r.p.fs.Stat(rc.SourcePath)
	if err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrPath, "path to git repo not found: %s", rc.SourcePath).
			WithDetail("path", rc.SourcePath)
	}

	res, err := config.Resolve(ctx, config.ResolveOptions{
		LoadOptions: config.LoadOptions{
			ConfigDir:  r.params.ConfigDir,
			SourcePath: rc.SourcePath,
			Overrides:  r.params.Overrides,
			Environ:    r.params.Environ,
		},
		Tag:      rc.Tag,
		Versions: r.p.versions,
	})
	if err != nil {
		return err
	}

	rc.Settings = res.Settings
	rc.Placeholders = res.Placeholders
	rc.Slug = res.Slug
	rc.TempRoot = res.TempRoot
	if strings.TrimSpace(rc.VcsUsername) == "" {
		rc.VcsUsername = rc.Setting(config.KeySvnUsername)
	}

	for _, l := range res.Layers {
		if l.Path != "" {
			rep.Info("Using %s settings: [path]%s[/path]", l.Name, l.Path)
		}
	}
	rep.Info("Releasing [bold]%s[/bold] %s from [path]%s[/path]", rc.Slug, rc.Tag, rc.SourcePath)

	if strings.TrimSpace(rc.Setting(config.KeySvnURL)) == "" {
		return errors.Newf(errors.ErrConfig, "%s is not set", config.KeySvnURL)
	}

	r.source, r.mirror = r.p.clients(rc)
	return nil
}

func (r *run) validateSourceTag(ctx context.Context) error {
	rc := r.rc
	rep := r.p.reporter

	rep.Step("Pulling the current repo")
	if err := r.source.Pull(ctx, rc.SourcePath); err != nil {
		rep.Fail("failed.")
		return err
	}
	rep.Done("done.")

	rep.Step("Checking if the tag exists in git")
	exists, err := r.source.TagExists(ctx, rc.SourcePath, rc.Tag)
	if err != nil {
		rep.Fail("failed.")
		return err
	}
	if exists {
		rep.Done("yes!")
		return nil
	}
	rep.Skip("no.")

	if config.Bool(rc.Setting(config.KeyGitDoNotTag)) {
		return errors.Newf(errors.ErrVcs, "tag %s does not exist in git and git tagging is disabled", rc.Tag)
	}

	rep.Step("Tagging %s in the git repo", rc.Tag)
	if err := r.source.CreateTag(ctx, rc.SourcePath, rc.Tag, rc.Setting(config.KeyGitTagMessage)); err != nil {
		rep.Fail("failed.")
		return err
	}
	rep.Done("done.")
	return nil
}

func (r *run) validateMirrorNotTagged(ctx context.Context) error {
	rc := r.rc
	rep := r.p.reporter

	if config.Bool(rc.Setting(config.KeySvnDoNotTag)) {
		rep.Info("SVN tagging is disabled, skipping the tag check.")
		return nil
	}

	url := rc.Setting(config.KeySvnURL)
	rep.Step("Checking if the tag exists in SVN")
	absent, err := r.mirror.CheckTagAbsentRemotely(ctx, url, rc.Tag)
	if err != nil {
		rep.Fail("failed.")
		return err
	}
	if !absent {
		rep.Fail("yes!")
		return errors.Newf(errors.ErrVcs, "tag %s already exists in SVN", rc.Tag).
			WithDetail("url", vcs.TagURL(url, rc.Tag))
	}
	rep.Done("no.")
	return nil
}

func (r *run) checkoutMirrorTrunk(ctx context.Context) error {
	rc := r.rc
	rep := r.p.reporter

	if err := staging.Allocate(rc); err != nil {
		return err
	}
	rep.Info("Temporary dir: [path]%s[/path]", rc.WorkspaceDir)

	trunk := vcs.TrunkURL(rc.Setting(config.KeySvnURL))
	rep.Step("Checking out SVN tree from [path]%s[/path]", trunk)
	if err := r.mirror.Checkout(ctx, trunk, rc.WorkspaceDir); err != nil {
		rep.Fail("failed.")
		return err
	}

	files, err := syncdiff.ListTree(r.p.fs, rc.WorkspaceDir)
	if err != nil {
		rep.Fail("failed.")
		return errors.Wrapf(err, errors.ErrStaging, "failed to list checkout %s", rc.WorkspaceDir)
	}
	rc.MirrorFiles = files
	rep.Done("done.")
	return nil
}

func (r *run) stage(ctx context.Context) error {
	rep := r.p.reporter

	rep.Step("Extracting git repo for update")
	res, err := staging.New(r.p.fs, r.source).WithMirror(r.mirror).Stage(ctx, r.rc)
	if err != nil {
		rep.Fail("failed.")
		return err
	}
	rep.Done("done.")

	if len(res.Replaced) > 0 {
		r.reportList("Replacing paths that changed kind", res.Replaced, "")
	}

	r.reportList("Deleting files", res.RemovedFiles, "no files to delete.")
	r.reportList("Deleting directories", res.RemovedDirs, "no directories to delete.")

	rep.Step("Generating %s", syncdiff.ReadmeFile)
	if res.ReadmeWritten {
		rep.Done("done.")
	} else {
		rep.Skip("no readme template, skipped.")
	}
	return nil
}

func (r *run) reconcileAdd(ctx context.Context) error {
	rc := r.rc
	rep := r.p.reporter

	rep.Step("Files to add to SVN")
	status, err := r.mirror.Status(ctx, rc.WorkspaceDir)
	if err != nil {
		rep.Fail("failed.")
		return err
	}
	r.plan = syncdiff.Diff(rc.StagedFiles, rc.MirrorFiles, status)
	rc.ModifiedFiles = r.plan.ToCommitAsModified

	// A replacement sits on a path scheduled for deletion, so status does
	// not always list it as unversioned.
	toAdd := r.plan.ToAdd
	for _, p := range rc.Replaced {
		if p = strings.TrimSuffix(p, "/"); !slices.Contains(toAdd, p) {
			toAdd = append(toAdd, p)
		}
	}

	for _, path := range toAdd {
		if err := r.mirror.Add(ctx, rc.WorkspaceDir, path); err != nil {
			rep.Fail("failed.")
			return err
		}
		rc.Added = append(rc.Added, path)
	}
	r.finishList(rc.Added, 0, "no files to add.")
	return nil
}

func (r *run) reconcileDelete(ctx context.Context) error {
	rc := r.rc
	rep := r.p.reporter

	rep.Step("Files to delete from SVN")
	// Replaced paths were scheduled while staging.
	rc.Deleted = append(rc.Deleted, rc.Replaced...)
	for _, path := range r.plan.ToDelete {
		if slices.Contains(rc.Replaced, path) {
			continue
		}
		if err := r.mirror.Delete(ctx, rc.WorkspaceDir, path); err != nil {
			rep.Fail("failed.")
			return err
		}
		rc.Deleted = append(rc.Deleted, path)
	}
	r.finishList(rc.Deleted, 0, "no files to delete from SVN.")
	return nil
}

func (r *run) summarizeModified(ctx context.Context) error {
	r.p.reporter.Step("Modified files to commit to SVN")
	r.finishList(r.rc.ModifiedFiles, syncdiff.SummaryLimit, "no modified files.")
	if r.diff().Empty() {
		r.p.reporter.Info("Trunk already matches %s; the commit will not change any file.", r.rc.Tag)
	}
	return nil
}

func (r *run) confirm(ctx context.Context) error {
	rc := r.rc
	rep := r.p.reporter

	req := types.ConfirmationRequest{
		Title:       fmt.Sprintf("About to commit %s.", rc.Tag),
		Description: fmt.Sprintf("Double-check %s to make sure everything looks fine.", rc.WorkspaceDir),
		Items:       changeItems(rc),
		Literal:     ConfirmationLiteral,
	}

	ok, err := r.p.confirmer.Confirm(ctx, req)
	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), errors.ErrUserAbort, "release interrupted")
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrUserAbort, "no confirmation received")
	}
	if !ok {
		rep.Error("Commit aborted.")
		return errors.New(errors.ErrUserAbort, "commit aborted by operator")
	}
	return nil
}

func (r *run) commit(ctx context.Context) error {
	rc := r.rc
	rep := r.p.reporter

	rep.Step("Committing to SVN")
	if err := r.mirror.Commit(ctx, rc.WorkspaceDir, rc.Setting(config.KeySvnCommitMessage)); err != nil {
		rep.Fail("failed.")
		return err
	}
	rep.Done("done.")
	return nil
}

func (r *run) tagMirror(ctx context.Context) error {
	rc := r.rc
	rep := r.p.reporter

	if config.Bool(rc.Setting(config.KeySvnDoNotTag)) {
		rep.Info("SVN tagging is disabled, skipping.")
		return nil
	}

	rep.Step("Tagging SVN")
	if err := r.mirror.CopyTrunkToTag(ctx, rc.Setting(config.KeySvnURL), rc.Tag, rc.Setting(config.KeySvnTagMessage)); err != nil {
		rep.Fail("failed.")
		return err
	}
	rep.Done("done.")
	return nil
}

// reportList reports a complete step whose outcome is a list of names.
func (r *run) reportList(step string, items []string, empty string) {
	r.p.reporter.Step(step)
	r.finishList(items, 0, empty)
}

func (r *run) finishList(items []string, limit int, empty string) {
	if len(items) == 0 {
		r.p.reporter.Skip(empty)
		return
	}
	r.p.reporter.Done("%s.", syncdiff.Summarize(items, limit))
}

// changeItems lists the scheduled changes in svn status notation. A path
// that changed kind is listed once, as a replacement.
func changeItems(rc *types.ReleaseContext) []string {
	replaced := make([]string, 0, len(rc.Replaced))
	for _, p := range rc.Replaced {
		replaced = append(replaced, strings.TrimSuffix(p, "/"))
	}

	var items []string
	for _, p := range rc.Added {
		if !slices.Contains(replaced, p) {
			items = append(items, "A "+p)
		}
	}
	for _, p := range rc.Deleted {
		if !slices.Contains(replaced, strings.TrimSuffix(p, "/")) {
			items = append(items, "D "+p)
		}
	}
	for _, p := range replaced {
		items = append(items, "R "+p)
	}
	for _, p := range rc.ModifiedFiles {
		items = append(items, "M "+p)
	}
	return items
}
