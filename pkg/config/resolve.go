package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/svnrelease/pkg/logging"
	"github.com/arthur-debert/svnrelease/pkg/types"
	goversion "github.com/hashicorp/go-version"
)

// DefaultPlatformVersion is the floor used for {{wp-version}} when the
// version lookup cannot do better.
const DefaultPlatformVersion = "4.5"

// ResolveOptions are the inputs of Resolve.
type ResolveOptions struct {
	LoadOptions

	// Tag is the version being released.
	Tag string

	// Versions looks up the latest platform version. Nil keeps the floor.
	Versions types.VersionProvider
}

// Resolution is the effective configuration of one release.
type Resolution struct {
	Settings        map[string]string
	Placeholders    []types.Placeholder
	Slug            string
	TempRoot        string
	PlatformVersion string
	Layers          []Layer
}

// Resolve loads and merges every layer, resolves the slug and platform
// version, and substitutes placeholders into the merged settings.
func Resolve(ctx context.Context, opts ResolveOptions) (*Resolution, error) {
	logger := logging.GetLogger("config")

	layers, err := LoadLayers(opts.LoadOptions)
	if err != nil {
		return nil, err
	}
	for _, l := range layers {
		logger.Debug().Str("layer", l.Name).Str("path", l.Path).Int("keys", len(l.Values)).Msg("Loaded settings layer")
	}
	logger.Info().Strs("files", Paths(layers)).Msg("Settings files")

	res := ResolveLayers(ctx, layers, opts.SourcePath, opts.Tag, opts.Versions)
	for _, key := range SortedKeys(res.Settings) {
		logger.Trace().Str("key", key).Str("value", res.Settings[key]).Msg("Resolved setting")
	}
	return res, nil
}

// ResolveLayers is Resolve over already loaded layers.
func ResolveLayers(ctx context.Context, layers []Layer, sourcePath, tag string, versions types.VersionProvider) *Resolution {
	merged := Merge(layers)
	slug := DeriveSlug(merged, sourcePath)
	platformVersion := LatestPlatformVersion(ctx, versions, DefaultPlatformVersion)
	placeholders := Placeholders(tag, slug, platformVersion)
	settings := ApplyPlaceholders(merged, placeholders)

	return &Resolution{
		Settings:        settings,
		Placeholders:    placeholders,
		Slug:            slug,
		TempRoot:        TempRoot(settings),
		PlatformVersion: platformVersion,
		Layers:          layers,
	}
}

// DeriveSlug returns a non-blank plugin-slug setting verbatim, otherwise the
// source directory name lower-cased with spaces replaced by hyphens.
func DeriveSlug(settings map[string]string, sourcePath string) string {
	if slug := settings[KeyPluginSlug]; strings.TrimSpace(slug) != "" {
		return slug
	}
	slug := strings.ToLower(filepath.Base(sourcePath))
	return strings.ReplaceAll(slug, " ", "-")
}

// TempRoot returns the temp-dir setting when it names an existing
// directory, otherwise the system temp directory.
func TempRoot(settings map[string]string) string {
	if dir := settings[KeyTempDir]; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return os.TempDir()
}

// LatestPlatformVersion keeps floor unless the provider answers with a
// well-formed, strictly newer version. Lookup failures are never fatal.
func LatestPlatformVersion(ctx context.Context, provider types.VersionProvider, floor string) string {
	logger := logging.GetLogger("config")
	if provider == nil {
		return floor
	}

	candidate, ok := provider.FetchLatestKnownVersion(ctx)
	if !ok {
		logger.Info().Str("version", floor).Msg("Latest platform version unavailable, keeping default")
		return floor
	}

	if newer(candidate, floor) {
		logger.Debug().Str("version", candidate).Msg("Using latest platform version")
		return candidate
	}
	return floor
}

// newer reports whether candidate is a valid version strictly greater than
// current. An unparseable current is treated as older than any valid
// candidate.
func newer(candidate, current string) bool {
	c, err := goversion.NewVersion(strings.TrimSpace(candidate))
	if err != nil {
		return false
	}
	cur, err := goversion.NewVersion(current)
	if err != nil {
		return true
	}
	return c.GreaterThan(cur)
}
