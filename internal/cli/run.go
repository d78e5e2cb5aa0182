package cli

import (
	"github.com/spf13/cobra"

	"github.com/spachava753/taskforge/internal/config"
	"github.com/spachava753/taskforge/internal/executor"
	"github.com/spachava753/taskforge/internal/graph"
	"github.com/spachava753/taskforge/internal/models"
)

func newRunCmd(opts *options) *cobra.Command {
	var noFailFast bool

	cmd := &cobra.Command{
		Use:   "run [TARGET]",
		Short: "Run all tasks, or one target and its dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := config.LoadProject(opts.configPath)
			if err != nil {
				return err
			}

			g := graph.New(project)
			ex := executor.New(project, g)
			runOpts := executor.Options{FailFast: !noFailFast}

			var report *models.RunReport
			if len(args) == 1 {
				report, err = ex.RunTarget(cmd.Context(), args[0], runOpts)
			} else {
				report, err = ex.RunAll(cmd.Context(), runOpts)
			}
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), report)

			if cmd.Context().Err() != nil {
				return &exitError{code: 130}
			}
			if !report.OK() {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noFailFast, "no-fail-fast", false, "Continue executing independent tasks after a failure")

	return cmd
}
