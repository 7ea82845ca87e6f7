package svnrelease

import (
	"bytes"
	"fmt"
	"os"

	"github.com/arthur-debert/svnrelease/pkg/config"
	"github.com/arthur-debert/svnrelease/pkg/release"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
	}
	cmd.AddCommand(newConfigShowCmd(opts))
	return cmd
}

func newConfigShowCmd(opts *globalOptions) *cobra.Command {
	var (
		offline bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "show <path> <tag>",
		Short: MsgConfigShowShort,
		Long:  MsgConfigShowLong,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf(MsgErrWorkingDir, err)
			}

			sourcePath, err := release.ResolveSourcePath(args[0], cwd)
			if err != nil {
				return err
			}

			res, err := config.Resolve(cmd.Context(), config.ResolveOptions{
				LoadOptions: config.LoadOptions{
					ConfigDir:  configDir(opts, cwd),
					SourcePath: sourcePath,
					Overrides:  opts.overrides,
				},
				Tag:      args[1],
				Versions: versionProvider(offline),
			})
			if err != nil {
				return err
			}

			return writeSettings(cmd, res, output)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, MsgFlagOffline)
	cmd.Flags().StringVarP(&output, "output", "o", "toml", MsgFlagOutput)

	return cmd
}

// writeSettings prints the layers that contributed and the merged settings.
func writeSettings(cmd *cobra.Command, res *config.Resolution, output string) error {
	var (
		body []byte
		err  error
	)

	switch output {
	case "toml":
		body, err = toml.Marshal(res.Settings)
		if err != nil {
			return fmt.Errorf(MsgErrRenderTOML, err)
		}
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(res.Settings); err != nil {
			return fmt.Errorf(MsgErrRenderYAML, err)
		}
		if err = enc.Close(); err != nil {
			return fmt.Errorf(MsgErrRenderYAML, err)
		}
		body = buf.Bytes()
	default:
		return fmt.Errorf(MsgErrOutput, output)
	}

	out := cmd.OutOrStdout()
	for _, l := range res.Layers {
		source := l.Path
		if source == "" {
			source = "(no file)"
		}
		fmt.Fprintf(out, MsgSettingsLayer, l.Name, source)
	}
	_, err = out.Write(body)
	return err
}
