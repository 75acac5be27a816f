package cli

import (
	"github.com/spf13/cobra"

	"github.com/devinit-cli/devinit/pkg/errors"
	"github.com/devinit-cli/devinit/pkg/execx"
)

// containerImage is the tag of the throwaway test image.
const containerImage = "devinit-dev"

func newContainerCmd(runner execx.Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "container",
		Short: MsgContainerShort,
		Long:  MsgContainerLong,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "build",
		Short: MsgContainerBuildShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDocker(); err != nil {
				return err
			}
			return runner.Run(cmd.Context(), execx.Command{
				Name: "docker",
				Args: []string{"build", "-t", containerImage, "."},
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "shell",
		Short: MsgContainerShellShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDocker(); err != nil {
				return err
			}
			return runner.Run(cmd.Context(), execx.Command{
				Name: "docker",
				Args: []string{"run", "--rm", "-it", containerImage},
			})
		},
	})

	return cmd
}

func requireDocker() error {
	if _, err := execx.SystemLookPath("docker"); err != nil {
		return errors.New(errors.ErrNotFound, "docker not found on PATH")
	}
	return nil
}
