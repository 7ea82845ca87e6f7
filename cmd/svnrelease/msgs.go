package svnrelease

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Publish a tagged git snapshot to a Subversion repository"
	MsgVersionShort    = "Print version information"
	MsgConfigShort     = "Inspect release settings"
	MsgConfigShowShort = "Print the effective settings for a release"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "svnrelease version %s\n  commit: %s\n  built:  %s\n"
	MsgSettingsLayer = "# %s: %s\n"

	// Error messages
	MsgErrWorkingDir  = "failed to determine working directory: %w"
	MsgErrOutput      = "unknown output %q, expected toml or yaml"
	MsgErrRenderTOML  = "failed to render settings as TOML: %w"
	MsgErrRenderYAML  = "failed to render settings as YAML: %w"
	MsgErrFormatValue = "invalid --format: %w"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfigDir = "Directory holding the default settings file (default: current directory)"
	MsgFlagSet       = "Override a setting, as key=value (repeatable)"
	MsgFlagFormat    = "Status output: auto, term or text"
	MsgFlagOffline   = "Skip the latest platform version lookup"
	MsgFlagOutput    = "Settings output: toml or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/release-example.txt
	msgReleaseExampleRaw string
	MsgReleaseExample    = strings.TrimRight(msgReleaseExampleRaw, "\n")

	//go:embed msgs/config-show-long.txt
	msgConfigShowLongRaw string
	MsgConfigShowLong    = strings.TrimSpace(msgConfigShowLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
