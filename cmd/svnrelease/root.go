package svnrelease

import (
	"fmt"
	"os"

	"github.com/arthur-debert/svnrelease/internal/version"
	"github.com/arthur-debert/svnrelease/pkg/logging"
	"github.com/arthur-debert/svnrelease/pkg/release"
	"github.com/arthur-debert/svnrelease/pkg/types"
	"github.com/arthur-debert/svnrelease/pkg/ui"
	"github.com/arthur-debert/svnrelease/pkg/ui/confirmations"
	"github.com/arthur-debert/svnrelease/pkg/wpversion"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	verbosity int
	configDir string
	overrides map[string]string
	format    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "svnrelease <path> <tag> [svn-username]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgReleaseExample,
		Version: version.Version,
		Args:    cobra.RangeArgs(2, 3),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd, opts, args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", MsgFlagConfigDir)
	rootCmd.PersistentFlags().StringToStringVar(&opts.overrides, "set", nil, MsgFlagSet)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())

	initHelpTopics(rootCmd)

	return rootCmd
}

// runRelease resolves the arguments and runs the release pipeline.
func runRelease(cmd *cobra.Command, opts *globalOptions, args []string) error {
	logger := logging.GetLogger("cmd.release")

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf(MsgErrWorkingDir, err)
	}

	sourcePath, err := release.ResolveSourcePath(args[0], cwd)
	if err != nil {
		return err
	}

	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return fmt.Errorf(MsgErrFormatValue, err)
	}
	reporter, err := ui.NewReporter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	params := release.Params{
		SourcePath: sourcePath,
		Tag:        args[1],
		ConfigDir:  configDir(opts, cwd),
		Overrides:  opts.overrides,
	}
	if len(args) > 2 {
		params.VcsUsername = args[2]
	}

	logger.Info().
		Str("source", params.SourcePath).
		Str("tag", params.Tag).
		Str("configDir", params.ConfigDir).
		Msg("Starting release")

	pipeline := release.New(release.Options{
		Confirmer: confirmations.NewConsoleDialog(cmd.InOrStdin(), cmd.OutOrStdout()),
		Versions:  wpversion.New(wpversion.DefaultURL),
		Reporter:  reporter,
	})

	result, err := pipeline.Run(cmd.Context(), params)
	if result != nil {
		logger.Info().
			Str("state", string(result.State)).
			Strs("completed", result.Completed).
			Int("added", len(result.Diff.ToAdd)).
			Int("deleted", len(result.Diff.ToDelete)).
			Int("modified", len(result.Diff.ToCommitAsModified)).
			Msg("Release finished")
	}
	return err
}

// configDir returns the --config-dir value, or cwd when it is not set.
func configDir(opts *globalOptions, cwd string) string {
	if opts.configDir != "" {
		return opts.configDir
	}
	return cwd
}

// versionProvider returns the platform version lookup, or nil when offline.
func versionProvider(offline bool) types.VersionProvider {
	if offline {
		return nil
	}
	return wpversion.New(wpversion.DefaultURL)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
