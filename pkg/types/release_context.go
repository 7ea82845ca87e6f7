package types

// Placeholder is a named token substituted as {{Name}} in configuration
// values, the readme template and the changelog.
type Placeholder struct {
	Name  string
	Value string
}

// ReleaseContext is the single mutable state object threaded through every
// release stage. Stages read what earlier stages established and write only
// their own output fields.
type ReleaseContext struct {
	// SourcePath is the absolute path to the source (git) repository
	SourcePath string

	// Tag is the version being released
	Tag string

	// Slug is the distribution identifier
	Slug string

	// Placeholders are the resolved tokens, in substitution order
	Placeholders []Placeholder

	// Settings is the effective configuration after merge and substitution
	Settings map[string]string

	// VcsUsername is the optional mirror username given on the command line
	VcsUsername string

	// TempRoot is the directory ephemeral resources are created under
	TempRoot string

	// HomeDir is the working directory at pipeline start, restored on cleanup
	HomeDir string

	// WorkspaceDir is the mirror checkout that receives the staged tree
	WorkspaceDir string

	// ScratchFile holds captured command output (the source archive)
	ScratchFile string

	// MirrorFiles lists the mirror tree as checked out, before staging
	MirrorFiles []string

	// StagedFiles lists the source-derived tree after cleanup rules
	StagedFiles []string

	// Replaced are mirror paths whose kind (file or directory) differs in
	// the snapshot. They are scheduled for deletion before extraction.
	Replaced []string

	// Added and Deleted are the paths scheduled with the mirror
	Added   []string
	Deleted []string

	// ModifiedFiles are the paths the mirror status reported as modified
	ModifiedFiles []string
}

// Setting returns the effective value for key, or "" when unset.
func (rc *ReleaseContext) Setting(key string) string {
	if rc == nil || rc.Settings == nil {
		return ""
	}
	return rc.Settings[key]
}
