package linkfarm

import (
	"fmt"

	"github.com/arthur-debert/linkfarm/internal/version"
	"github.com/arthur-debert/linkfarm/pkg/commands"
	"github.com/arthur-debert/linkfarm/pkg/config"
	"github.com/arthur-debert/linkfarm/pkg/logging"
	"github.com/arthur-debert/linkfarm/pkg/paths"
	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/arthur-debert/linkfarm/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// newRunCmd builds the link, unlink and relink commands, which differ only
// in the command they hand to the engine.
func newRunCmd(flags *globalFlags, command types.Command, short, long string, withAdopt bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:     string(command) + " <packages...>",
		Short:   short,
		Long:    long,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.LogCommand(cmd.Name(), args)

			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			opts, err := config.Resolve(cfg, command, args, flags.verbosity, flags.dryRun)
			if err != nil {
				return err
			}
			if opts.Verbosity != flags.verbosity {
				logging.SetupLogger(opts.Verbosity)
			}

			result, err := commands.Run(opts)
			if result != nil {
				renderer, rerr := ui.NewRenderer(ui.FormatAuto, cmd.OutOrStdout())
				if rerr != nil {
					return rerr
				}
				if rerr := renderer.RenderRun(result); rerr != nil {
					return rerr
				}
			}
			if err != nil {
				return err
			}
			return result.Err()
		},
	}
	if command == types.CommandLink {
		cmd.Example = MsgLinkExample
	}
	if withAdopt {
		cmd.Flags().Bool("adopt", false, MsgFlagAdopt)
	}
	return cmd
}

func newStatusCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "status [packages...]",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}

			entries, err := commands.Status(commands.StatusOptions{
				StorePath: paths.StorePath(),
				Packages:  args,
			})
			if err != nil {
				return err
			}

			renderer, err := ui.NewRenderer(f, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return renderer.RenderStatus(entries)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	return cmd
}

func newGenConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			out, err := config.Generate(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "linkfarm version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(linkfarm completion bash)

Zsh:
  $ linkfarm completion zsh > "${fpath[1]}/_linkfarm"

Fish:
  $ linkfarm completion fish | source

PowerShell:
  PS> linkfarm completion powershell | Out-String | Invoke-Expression
`,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}
