package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVersions struct {
	version string
	ok      bool
	calls   int
}

func (s *stubVersions) FetchLatestKnownVersion(ctx context.Context) (string, bool) {
	s.calls++
	return s.version, s.ok
}

func TestDeriveSlug(t *testing.T) {
	assert.Equal(t, "my-cool-plugin", DeriveSlug(map[string]string{}, "/src/My Cool Plugin"))
	assert.Equal(t, "my-cool-plugin", DeriveSlug(map[string]string{KeyPluginSlug: "  "}, "/src/My Cool Plugin"))
	assert.Equal(t, "Custom Slug", DeriveSlug(map[string]string{KeyPluginSlug: "Custom Slug"}, "/src/other"))
}

func TestLatestPlatformVersion(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubVersions
		want     string
	}{
		{"newer_is_used", &stubVersions{version: "6.4.2", ok: true}, "6.4.2"},
		{"older_keeps_floor", &stubVersions{version: "4.4", ok: true}, "4.5"},
		{"equal_keeps_floor", &stubVersions{version: "4.5.0", ok: true}, "4.5"},
		{"unreachable_keeps_floor", &stubVersions{ok: false}, "4.5"},
		{"malformed_keeps_floor", &stubVersions{version: "latest!", ok: true}, "4.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LatestPlatformVersion(context.Background(), tt.provider, DefaultPlatformVersion)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, tt.provider.calls)
		})
	}

	t.Run("nil_provider", func(t *testing.T) {
		assert.Equal(t, "4.5", LatestPlatformVersion(context.Background(), nil, "4.5"))
	})
}

func TestTempRoot(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, dir, TempRoot(map[string]string{KeyTempDir: dir}))
	assert.Equal(t, os.TempDir(), TempRoot(map[string]string{KeyTempDir: filepath.Join(dir, "missing")}))
	assert.Equal(t, os.TempDir(), TempRoot(map[string]string{}))
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, "tool")
	source := filepath.Join(root, "My Cool Plugin")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.MkdirAll(source, 0755))

	writeFile(t, filepath.Join(root, "release.toml"), `svn-username = "alice"`)
	writeFile(t, filepath.Join(source, "release.toml"), `svn-username = ""
svn-commit-message = "Release {{TAG}} of {{plugin-slug}} for WP {{wp-version}} {{unknown}}"`)

	res, err := Resolve(context.Background(), ResolveOptions{
		LoadOptions: LoadOptions{ConfigDir: configDir, SourcePath: source, Environ: []string{}},
		Tag:         "2.3.0",
		Versions:    &stubVersions{version: "6.5", ok: true},
	})
	require.NoError(t, err)

	assert.Equal(t, "my-cool-plugin", res.Slug)
	assert.Equal(t, "6.5", res.PlatformVersion)
	assert.Equal(t, "alice", res.Settings[KeySvnUsername])
	assert.Equal(t, "Release 2.3.0 of my-cool-plugin for WP 6.5 {{unknown}}", res.Settings[KeySvnCommitMessage])
	assert.Equal(t, "https://plugins.svn.wordpress.org/my-cool-plugin", res.Settings[KeySvnURL])
	assert.Equal(t, os.TempDir(), res.TempRoot)
	assert.Equal(t, []string{LayerBuiltin, LayerLocal, LayerSource}, layerNames(res.Layers))
	require.Len(t, res.Placeholders, 4)
	assert.Equal(t, "2.3.0", res.Placeholders[0].Value)
}
