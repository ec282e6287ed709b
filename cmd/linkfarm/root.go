package linkfarm

import (
	"fmt"

	"github.com/arthur-debert/linkfarm/internal/version"
	"github.com/arthur-debert/linkfarm/pkg/config"
	"github.com/arthur-debert/linkfarm/pkg/logging"
	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flag values of one command tree
type globalFlags struct {
	verbosity int
	dryRun    bool
	dotfiles  bool
	target    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "linkfarm",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVarP(&flags.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&flags.dotfiles, "dotfiles", false, MsgFlagDotfiles)
	rootCmd.PersistentFlags().StringVarP(&flags.target, "target", "t", "", MsgFlagTarget)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newRunCmd(flags, types.CommandLink, MsgLinkShort, MsgLinkLong, true))
	rootCmd.AddCommand(newRunCmd(flags, types.CommandUnlink, MsgUnlinkShort, MsgUnlinkLong, false))
	rootCmd.AddCommand(newRunCmd(flags, types.CommandRelink, MsgRelinkShort, MsgRelinkLong, true))
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newGenConfigCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadConfig merges the configuration layers with the flags the user set
// explicitly on cmd.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	opts := config.DefaultLoadOptions()
	opts.Flags = map[string]interface{}{}

	if cmd.Flags().Changed("dotfiles") {
		opts.Flags["dotfiles"] = flags.dotfiles
	}
	if cmd.Flags().Changed("target") {
		opts.Flags["target"] = flags.target
	}
	if f := cmd.Flags().Lookup("adopt"); f != nil && f.Changed {
		adopt, err := cmd.Flags().GetBool("adopt")
		if err != nil {
			return nil, err
		}
		opts.Flags["adopt"] = adopt
	}

	return config.Load(opts)
}
