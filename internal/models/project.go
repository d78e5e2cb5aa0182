package models

import (
	"slices"
)

// Task represents a fully validated task ready for scheduling and execution.
type Task struct {
	ID         string
	Command    string
	Deps       []string          // deduplicated, first-seen order, never self-referential
	Env        map[string]string // per-task environment overrides
	WorkingDir string            // empty means the caller's working directory
}

// Project is the validated set of tasks loaded from a config file.
// It is built once per run and read-only afterwards.
type Project struct {
	Tasks map[string]Task
}

// Has reports whether a task with the given id exists.
func (p *Project) Has(id string) bool {
	_, ok := p.Tasks[id]
	return ok
}

// Task returns the task with the given id. The second return value is
// false if the id is not part of the project.
func (p *Project) Task(id string) (Task, bool) {
	t, ok := p.Tasks[id]
	return t, ok
}

// TaskIDs returns all task ids in sorted order.
func (p *Project) TaskIDs() []string {
	ids := make([]string, 0, len(p.Tasks))
	for id := range p.Tasks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of tasks in the project.
func (p *Project) Len() int {
	return len(p.Tasks)
}
