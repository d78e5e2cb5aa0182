package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/spachava753/taskforge/internal/models"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	skipColor = color.New(color.FgYellow)
)

// printReport writes one status line per task id in the attempted order.
// Ids without a result were skipped, either because a dependency failed or
// because a fail-fast stop ended the walk before reaching them.
func printReport(w io.Writer, report *models.RunReport) {
	for _, id := range report.Order {
		res, ok := report.Results[id]
		switch {
		case !ok:
			fmt.Fprintf(w, "%s %s\n", skipColor.Sprint("SKIP"), id)
		case res.ExitCode == 0:
			fmt.Fprintf(w, "%s %s, %.3fs, exit code = %d\n", okColor.Sprint("OK"), id, res.Duration.Seconds(), res.ExitCode)
		default:
			fmt.Fprintf(w, "%s %s, %.3fs, exit code = %d\n", failColor.Sprint("FAIL"), id, res.Duration.Seconds(), res.ExitCode)
		}
	}
}
