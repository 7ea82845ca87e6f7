package release_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/arthur-debert/svnrelease/pkg/release"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSourcePath(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	base := filepath.Join(root, "release-tools")
	require.NoError(t, os.MkdirAll(base, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "my-plugin"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "my-plugin", "inner"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("x"), 0644))

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{name: "bare name is a sibling", arg: "my-plugin", want: filepath.Join(root, "my-plugin")},
		{name: "bare path is below the parent", arg: "my-plugin/inner", want: filepath.Join(root, "my-plugin", "inner")},
		{name: "absolute path", arg: filepath.Join(root, "my-plugin"), want: filepath.Join(root, "my-plugin")},
		{name: "dot relative", arg: "./nested", want: filepath.Join(base, "nested")},
		{name: "parent relative", arg: "../my-plugin", want: filepath.Join(root, "my-plugin")},
		{name: "missing", arg: "nope", wantErr: true},
		{name: "not a directory", arg: filepath.Join(root, "file.txt"), wantErr: true},
		{name: "empty", arg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := release.ResolveSourcePath(tt.arg, base)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrPath))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
