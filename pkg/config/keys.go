package config

import "strings"

// Recognized setting keys.
const (
	KeyPluginSlug       = "plugin-slug"
	KeyTempDir          = "temp-dir"
	KeyGitPath          = "git-path"
	KeyGitDoNotTag      = "git-do-not-tag"
	KeyGitTagMessage    = "git-tag-message"
	KeySvnPath          = "svn-path"
	KeySvnURL           = "svn-url"
	KeySvnUsername      = "svn-username"
	KeySvnDoNotTag      = "svn-do-not-tag"
	KeySvnCommitMessage = "svn-commit-message"
	KeySvnTagMessage    = "svn-tag-message"
	KeyReadmeTemplate   = "readme-template"
	KeyChangelog        = "changelog"
	KeyDeleteFiles      = "DeleteFiles"
	KeyDeleteDirs       = "DeleteDirs"
)

// KnownKeys lists every recognized key in documentation order.
var KnownKeys = []string{
	KeyPluginSlug,
	KeyTempDir,
	KeyGitPath,
	KeyGitDoNotTag,
	KeyGitTagMessage,
	KeySvnPath,
	KeySvnURL,
	KeySvnUsername,
	KeySvnDoNotTag,
	KeySvnCommitMessage,
	KeySvnTagMessage,
	KeyReadmeTemplate,
	KeyChangelog,
	KeyDeleteFiles,
	KeyDeleteDirs,
}

// canonicalKey maps a key in any letter case (and with '_' for '-') to its
// recognized spelling. Unknown keys are returned unchanged.
func canonicalKey(key string) string {
	normalized := strings.ReplaceAll(strings.ToLower(key), "_", "-")
	for _, known := range KnownKeys {
		if strings.ToLower(known) == normalized {
			return known
		}
	}
	return key
}

// Bool interprets a boolean-like setting value.
func Bool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// List splits a comma separated setting into trimmed, non-blank entries.
func List(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
