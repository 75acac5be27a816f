// Package cli wires the devinit command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/devinit-cli/devinit/internal/version"
	"github.com/devinit-cli/devinit/pkg/config"
	"github.com/devinit-cli/devinit/pkg/execx"
	"github.com/devinit-cli/devinit/pkg/logging"
	"github.com/devinit-cli/devinit/pkg/operations"
	"github.com/devinit-cli/devinit/pkg/paths"
	"github.com/devinit-cli/devinit/pkg/platform"
	"github.com/devinit-cli/devinit/pkg/runner"
	"github.com/devinit-cli/devinit/pkg/steps"
	"github.com/devinit-cli/devinit/pkg/style"
	"github.com/devinit-cli/devinit/pkg/synthfs"
)

// rootFlags holds the persistent flag values shared by all commands.
type rootFlags struct {
	verbosity  int
	dryRun     bool
	noBackup   bool
	output     string
	configFile string
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "devinit",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVarP(&flags.dryRun, "dry-run", "d", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVarP(&flags.noBackup, "no-backup", "n", false, MsgFlagNoBackup)
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "auto", MsgFlagOutput)
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddCommand(newUpCmd(flags))
	rootCmd.AddCommand(newStatusCmd(flags))
	rootCmd.AddCommand(newDoctorCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newContainerCmd(execx.NewOSRunner()))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// buildStepContext assembles the environment every step inspects.
func buildStepContext(flags *rootFlags) (steps.Context, error) {
	p, err := paths.New("")
	if err != nil {
		return steps.Context{}, err
	}

	configFile := flags.configFile
	if configFile == "" {
		configFile = p.ConfigFilePath()
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return steps.Context{}, err
	}

	return steps.Context{
		Config:   cfg,
		Paths:    p,
		Platform: platform.NewChecker(),
	}, nil
}

// buildRunner validates the host and assembles the step runner. The
// root and package manager checks run here so an unusable host exits
// before any operation is attempted.
func buildRunner(flags *rootFlags) (*runner.Runner, error) {
	stepCtx, err := buildStepContext(flags)
	if err != nil {
		return nil, err
	}

	if err := stepCtx.Platform.CheckNotRoot(); err != nil {
		return nil, err
	}
	pkgMgr, err := stepCtx.Platform.DetectPackageManager()
	if err != nil {
		return nil, err
	}
	stepCtx.PkgMgr = pkgMgr

	executor := operations.NewExecutor(
		execx.NewOSRunner(),
		synthfs.NewDeployer(),
		flags.dryRun,
		!flags.noBackup,
	)

	return runner.New(stepCtx, executor, flags.dryRun), nil
}

// newRenderer resolves the --output flag against the actual output
// stream. Auto only picks terminal rendering when w really is a tty.
func newRenderer(flags *rootFlags, w io.Writer) (*style.Renderer, error) {
	format, err := style.ParseFormat(flags.output)
	if err != nil {
		return nil, err
	}
	if format == style.FormatAuto {
		if f, ok := w.(*os.File); ok {
			format = style.DetectFormat(f)
		} else {
			format = style.FormatText
		}
	}
	return style.NewRenderer(w, format), nil
}

func newUpCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "up [steps...]",
		Short:   MsgUpShort,
		Long:    MsgUpLong,
		Example: MsgUpExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildRunner(flags)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			report, runErr := r.Run(cmd.Context(), args)
			if report != nil {
				if renderErr := renderer.RunReport(report); renderErr != nil {
					return renderErr
				}
			}
			return runErr
		},
	}
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stepCtx, err := buildStepContext(flags)
			if err != nil {
				return err
			}
			// status never executes anything, so a missing package
			// manager or a root shell only degrades the report.
			stepCtx.PkgMgr, _ = stepCtx.Platform.DetectPackageManager()

			renderer, err := newRenderer(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			r := runner.New(stepCtx, nil, true)
			return renderer.Statuses(r.Status())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "devinit version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Built:  %s\n", version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
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
