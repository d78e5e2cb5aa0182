package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spachava753/taskforge/internal/config"
	"github.com/spachava753/taskforge/internal/graph"
)

func newGraphCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the dependency graph as an adjacency list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := config.LoadProject(opts.configPath)
			if err != nil {
				return err
			}

			g := graph.New(project)
			out := cmd.OutOrStdout()
			for _, id := range project.TaskIDs() {
				deps := strings.Join(g.Deps(id), " ")
				if deps == "" {
					fmt.Fprintf(out, "%s:\n", id)
				} else {
					fmt.Fprintf(out, "%s: %s\n", id, deps)
				}
			}
			return nil
		},
	}
}
