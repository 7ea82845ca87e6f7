package config

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/svnrelease/pkg/types"
)

// Placeholder names.
const (
	PlaceholderTag                   = "tag"
	PlaceholderSlug                  = "plugin-slug"
	PlaceholderWPVersion             = "wp-version"
	PlaceholderLatestPlatformVersion = "latest-platform-version"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Placeholders builds the standard placeholder list for a release.
func Placeholders(tag, slug, platformVersion string) []types.Placeholder {
	return []types.Placeholder{
		{Name: PlaceholderTag, Value: tag},
		{Name: PlaceholderSlug, Value: slug},
		{Name: PlaceholderWPVersion, Value: platformVersion},
		{Name: PlaceholderLatestPlatformVersion, Value: platformVersion},
	}
}

// ReplacePlaceholders substitutes {{name}} tokens (name matched case
// insensitively) in s. The replacement text is never rescanned, so a value
// cannot pull in another placeholder. Unknown tokens are left as they are.
// When a name appears more than once in placeholders the last one wins.
func ReplacePlaceholders(s string, placeholders []types.Placeholder) string {
	if len(placeholders) == 0 || !strings.Contains(s, "{{") {
		return s
	}

	values := make(map[string]string, len(placeholders))
	for _, p := range placeholders {
		values[strings.ToLower(p.Name)] = p.Value
	}

	return placeholderPattern.ReplaceAllStringFunc(s, func(token string) string {
		name := strings.ToLower(token[2 : len(token)-2])
		if value, ok := values[name]; ok {
			return value
		}
		return token
	})
}

// ApplyPlaceholders returns a copy of settings with placeholders substituted
// in every value.
func ApplyPlaceholders(settings map[string]string, placeholders []types.Placeholder) map[string]string {
	out := make(map[string]string, len(settings))
	for key, value := range settings {
		out[key] = ReplacePlaceholders(value, placeholders)
	}
	return out
}
