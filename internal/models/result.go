package models

import "time"

// TaskResult contains the outcome of a single executed task. Skipped tasks
// never produce a TaskResult.
type TaskResult struct {
	TaskID   string        `json:"task_id"`
	ExitCode int           `json:"exit_code"` // -1 if the process could not be started
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	Duration time.Duration `json:"duration"`
}

// RunReport is the immutable record of one run: the order that was
// attempted, per-task results for everything that executed, and the failed
// and skipped id lists in the order they were recorded.
type RunReport struct {
	RunID   string                `json:"run_id"`
	Order   []string              `json:"order"`
	Results map[string]TaskResult `json:"results"`
	Failed  []string              `json:"failed"`
	Skipped []string              `json:"skipped"`
}

// OK reports whether the run completed without any task failures.
func (r *RunReport) OK() bool {
	return len(r.Failed) == 0
}
