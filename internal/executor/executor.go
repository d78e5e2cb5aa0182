package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"github.com/spachava753/taskforge/internal/graph"
	"github.com/spachava753/taskforge/internal/models"
)

// Options control a single run.
type Options struct {
	// FailFast stops the walk at the first task failure. Every task not
	// yet reached is then marked skipped, whether or not it depends on
	// the failure.
	FailFast bool
}

// Executor runs tasks sequentially in an order produced by the graph.
// It holds no state across runs; each invocation builds a fresh report.
type Executor struct {
	project *models.Project
	graph   *graph.Graph

	// Ambient is the environment snapshot merged under each task's
	// overrides. Defaults to os.Environ(); tests inject a synthetic one.
	Ambient []string
}

// New creates an executor over a project and its dependency graph.
func New(project *models.Project, g *graph.Graph) *Executor {
	return &Executor{
		project: project,
		graph:   g,
		Ambient: os.Environ(),
	}
}

// RunAll executes every task in the project in full topological order.
func (e *Executor) RunAll(ctx context.Context, opts Options) (*models.RunReport, error) {
	order, err := e.graph.TopoOrder()
	if err != nil {
		return nil, err
	}
	return e.run(ctx, order, opts), nil
}

// RunTarget executes the target and its transitive dependencies in
// subgraph topological order.
func (e *Executor) RunTarget(ctx context.Context, target string, opts Options) (*models.RunReport, error) {
	order, err := e.graph.SubgraphOrder(target)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, order, opts), nil
}

// run walks the order sequentially. A task whose dependency already failed
// or was skipped is skipped without spawning a process. Child process
// failures are recorded as data, never returned as errors.
func (e *Executor) run(ctx context.Context, order []string, opts Options) *models.RunReport {
	runID := uuid.NewString()
	log := slog.With("run_id", runID)

	results := make(map[string]models.TaskResult, len(order))
	failed := make([]string, 0)
	skipped := make([]string, 0)
	failedSet := make(map[string]bool)
	skippedSet := make(map[string]bool)
	processed := make(map[string]bool, len(order))
	stoppedEarly := false

	for _, id := range order {
		task, _ := e.project.Task(id)

		blocked := false
		for _, dep := range task.Deps {
			if failedSet[dep] || skippedSet[dep] {
				blocked = true
				break
			}
		}
		if blocked {
			skipped = append(skipped, id)
			skippedSet[id] = true
			processed[id] = true
			log.Info("task skipped", "task_id", id)
			continue
		}

		log.Debug("task starting", "task_id", id)
		res := e.spawn(ctx, task)
		results[id] = res
		processed[id] = true

		if res.ExitCode == 0 {
			log.Info("task succeeded", "task_id", id, "duration", res.Duration)
			continue
		}

		failed = append(failed, id)
		failedSet[id] = true
		log.Warn("task failed", "task_id", id, "exit_code", res.ExitCode, "duration", res.Duration)
		if opts.FailFast {
			stoppedEarly = true
			break
		}
	}

	// A fail-fast stop skips everything not yet reached, independent of
	// the dependency relation.
	if stoppedEarly {
		for _, id := range order {
			if !processed[id] {
				skipped = append(skipped, id)
				skippedSet[id] = true
			}
		}
	}

	return &models.RunReport{
		RunID:   runID,
		Order:   order,
		Results: results,
		Failed:  failed,
		Skipped: skipped,
	}
}

// spawn runs one task's command through the shell, blocking until it
// exits. A process that cannot be started is reported with exit code -1
// and the spawn error in Stderr.
func (e *Executor) spawn(ctx context.Context, task models.Task) models.TaskResult {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, "sh", "-c", task.Command)
	cmd.Dir = task.WorkingDir
	cmd.Env = MergeEnv(e.Ambient, task.Env)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
			fmt.Fprintln(&stderr, err)
		}
	}

	return models.TaskResult{
		TaskID:   task.ID,
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
	}
}
