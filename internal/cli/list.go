package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spachava753/taskforge/internal/config"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List task ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := config.LoadProject(opts.configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, id := range project.TaskIDs() {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}
