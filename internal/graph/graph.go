package graph

import (
	"slices"

	"github.com/spachava753/taskforge/internal/models"
)

// Graph is an immutable dependency view over a project. Dependency lists
// are sorted at construction so every traversal is deterministic: two
// projects with the same (id -> dependency set) relation produce identical
// orders regardless of how the source data was declared.
type Graph struct {
	project *models.Project
	deps    map[string][]string
}

// New builds a Graph from a validated project.
func New(project *models.Project) *Graph {
	deps := make(map[string][]string, project.Len())
	for id, task := range project.Tasks {
		sorted := slices.Clone(task.Deps)
		slices.Sort(sorted)
		deps[id] = sorted
	}
	return &Graph{project: project, deps: deps}
}

// Deps returns the lexicographically sorted dependency ids of a task.
func (g *Graph) Deps(id string) []string {
	return slices.Clone(g.deps[id])
}

// TopoOrder returns a topological ordering over every task in the project:
// each task appears strictly after all of its dependencies. Fails with
// *models.CycleError if the dependency relation is cyclic.
func (g *Graph) TopoOrder() ([]string, error) {
	universe := make(map[string]bool, len(g.deps))
	for id := range g.deps {
		universe[id] = true
	}
	return g.toposort(universe)
}

// SubgraphOrder returns the topological ordering restricted to the target
// and its transitive dependencies. Fails with *models.UnknownTargetError if
// the target is not part of the project, or *models.CycleError if the
// reachable subgraph is cyclic.
func (g *Graph) SubgraphOrder(target string) ([]string, error) {
	if _, ok := g.deps[target]; !ok {
		return nil, &models.UnknownTargetError{Target: target}
	}

	// The closure is a set; discovery order does not matter.
	needed := make(map[string]bool)
	worklist := []string{target}
	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if needed[id] {
			continue
		}
		needed[id] = true
		worklist = append(worklist, g.deps[id]...)
	}

	return g.toposort(needed)
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	visited
)

// frame is one level of the depth-first traversal: a task id and the index
// of its next dependency to explore. An explicit stack of frames replaces
// recursion so large graphs cannot exhaust the call stack and the traversal
// state stays inspectable.
type frame struct {
	id   string
	next int
}

func (g *Graph) toposort(universe map[string]bool) ([]string, error) {
	state := make(map[string]visitState, len(universe))
	pos := make(map[string]int, len(universe))
	path := make([]string, 0, len(universe))
	out := make([]string, 0, len(universe))

	roots := make([]string, 0, len(universe))
	for id := range universe {
		roots = append(roots, id)
	}
	slices.Sort(roots)

	for _, root := range roots {
		if state[root] != unvisited {
			continue
		}

		state[root] = visiting
		pos[root] = len(path)
		path = append(path, root)
		stack := []frame{{id: root}}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			deps := g.deps[f.id]

			descended := false
			for f.next < len(deps) {
				dep := deps[f.next]
				f.next++
				if !universe[dep] {
					continue
				}
				switch state[dep] {
				case visited:
					continue
				case visiting:
					// Closed loop from the repeated id's first
					// appearance in the current path.
					cycle := append(slices.Clone(path[pos[dep]:]), dep)
					return nil, &models.CycleError{Cycle: cycle}
				default:
					state[dep] = visiting
					pos[dep] = len(path)
					path = append(path, dep)
					stack = append(stack, frame{id: dep})
					descended = true
				}
				if descended {
					break
				}
			}
			if descended {
				continue
			}

			state[f.id] = visited
			path = path[:len(path)-1]
			delete(pos, f.id)
			out = append(out, f.id)
			stack = stack[:len(stack)-1]
		}
	}

	return out, nil
}
