package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devinit-cli/devinit/pkg/config"
	"github.com/devinit-cli/devinit/pkg/paths"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := flags.configFile
			if target == "" {
				p, err := paths.New("")
				if err != nil {
					return err
				}
				target = p.ConfigFilePath()
			}

			if err := config.WriteDefault(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", target)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stepCtx, err := buildStepContext(flags)
			if err != nil {
				return err
			}

			out, err := config.MarshalEffective(stepCtx.Config)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	})

	return cmd
}
