package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	rerrors "github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/release.toml
var builtinConfig []byte

// EnvPrefix is the prefix of environment variables read as settings.
const EnvPrefix = "SVNRELEASE_"

// Layer names, lowest precedence first.
const (
	LayerBuiltin   = "builtin"
	LayerDefault   = "default"
	LayerLocal     = "local"
	LayerSource    = "plugin"
	LayerEnv       = "env"
	LayerOverrides = "overrides"
)

// FileNames are the settings file names tried in each candidate directory.
var FileNames = []string{"release.toml", "release.yaml", "release.yml"}

// SourceSubdirs are the source tree locations searched for the
// source-specific layer, in order. The first existing file wins.
var SourceSubdirs = []string{"", "release", "bin"}

// Layer is an ordered, named source of settings.
type Layer struct {
	Name   string
	Path   string
	Values map[string]string
}

// LoadOptions controls which layers LoadLayers reads.
type LoadOptions struct {
	// ConfigDir is the invocation directory. The default layer is read from
	// it and the local layer from its parent.
	ConfigDir string

	// SourcePath is the source repository root.
	SourcePath string

	// Overrides are command line settings, applied last.
	Overrides map[string]string

	// Environ replaces os.Environ for the env layer when non-nil.
	Environ []string
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadLayers reads every configured layer, lowest precedence first. Layers
// without a file are omitted.
func LoadLayers(opts LoadOptions) ([]Layer, error) {
	var layers []Layer

	builtin, err := loadKoanf(&rawBytesProvider{bytes: builtinConfig}, toml.Parser())
	if err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrConfig, "failed to load built-in defaults")
	}
	layers = append(layers, Layer{Name: LayerBuiltin, Values: builtin})

	if opts.ConfigDir != "" {
		if path := findFile([]string{opts.ConfigDir}); path != "" {
			layer, err := loadFileLayer(LayerDefault, path)
			if err != nil {
				return nil, err
			}
			layers = append(layers, layer)
		}

		if path := findFile([]string{filepath.Dir(opts.ConfigDir)}); path != "" {
			layer, err := loadFileLayer(LayerLocal, path)
			if err != nil {
				return nil, err
			}
			layers = append(layers, layer)
		}
	}

	if opts.SourcePath != "" {
		dirs := make([]string, 0, len(SourceSubdirs))
		for _, sub := range SourceSubdirs {
			dirs = append(dirs, filepath.Join(opts.SourcePath, sub))
		}
		if path := findFile(dirs); path != "" {
			layer, err := loadFileLayer(LayerSource, path)
			if err != nil {
				return nil, err
			}
			layers = append(layers, layer)
		}
	}

	envValues, err := loadEnv(opts.Environ)
	if err != nil {
		return nil, err
	}
	if len(envValues) > 0 {
		layers = append(layers, Layer{Name: LayerEnv, Values: envValues})
	}

	if len(opts.Overrides) > 0 {
		raw := make(map[string]interface{}, len(opts.Overrides))
		for k, v := range opts.Overrides {
			raw[k] = v
		}
		values, err := loadKoanf(confmap.Provider(raw, ""), nil)
		if err != nil {
			return nil, rerrors.Wrap(err, rerrors.ErrConfig, "failed to load command line overrides")
		}
		layers = append(layers, Layer{Name: LayerOverrides, Values: values})
	}

	return layers, nil
}

// findFile returns the first settings file found in dirs, trying every
// file name in a directory before moving to the next one.
func findFile(dirs []string) string {
	for _, dir := range dirs {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

func loadFileLayer(name, path string) (Layer, error) {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		parser = toml.Parser()
	}

	values, err := loadKoanf(file.Provider(path), parser)
	if err != nil {
		return Layer{}, rerrors.Wrapf(err, rerrors.ErrConfig, "failed to load %s settings from %s", name, path).
			WithDetail("path", path)
	}
	return Layer{Name: name, Path: path, Values: values}, nil
}

func loadEnv(environ []string) (map[string]string, error) {
	k := koanf.New(".")
	keyFn := func(s string) string {
		return canonicalKey(strings.TrimPrefix(s, EnvPrefix))
	}

	var provider koanf.Provider
	if environ != nil {
		raw := make(map[string]interface{})
		for _, kv := range environ {
			name, value, ok := strings.Cut(kv, "=")
			if !ok || !strings.HasPrefix(name, EnvPrefix) {
				continue
			}
			raw[keyFn(name)] = value
		}
		provider = confmap.Provider(raw, "")
	} else {
		provider = env.Provider(EnvPrefix, ".", keyFn)
	}

	if err := k.Load(provider, nil); err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrConfig, "failed to load environment settings")
	}
	return flatten(k.All()), nil
}

func loadKoanf(provider koanf.Provider, parser koanf.Parser) (map[string]string, error) {
	k := koanf.New(".")
	if err := k.Load(provider, parser); err != nil {
		return nil, err
	}
	return flatten(k.All()), nil
}

// flatten converts parsed values to strings. Lists are joined with commas so
// DeleteFiles and DeleteDirs may be written as arrays.
func flatten(raw map[string]interface{}) map[string]string {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		out[canonicalKey(key)] = stringify(value)
	}
	return out
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// Paths returns the file paths of the file-backed layers, for reporting.
func Paths(layers []Layer) []string {
	var paths []string
	for _, l := range layers {
		if l.Path != "" {
			paths = append(paths, l.Path)
		}
	}
	return paths
}

// SortedKeys returns the keys of settings in a stable order.
func SortedKeys(settings map[string]string) []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
