package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

// options holds the persistent flag values shared by all subcommands.
type options struct {
	configPath string
	logLevel   string
}

// exitError carries a process exit code through cobra's error path for
// outcomes that were already reported on stdout/stderr.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Execute runs the taskforge CLI against argv and returns the process exit
// code: 0 for a clean run, 1 when tasks failed, 2 for config or graph
// errors, 130 when the run was interrupted.
func Execute(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(argv)

	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "taskforge",
		Short:         "Dependency-aware task runner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(stderr, opts.logLevel)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "taskforge.yml", "Path to config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRunCmd(opts),
		newListCmd(opts),
		newGraphCmd(opts),
	)

	return cmd
}

// setupLogger installs the default slog logger: text output on stderr so
// task status lines on stdout stay machine-readable.
func setupLogger(w io.Writer, level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
