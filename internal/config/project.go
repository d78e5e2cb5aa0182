package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/spachava753/taskforge/internal/models"
)

// rawTask mirrors one task entry as written in the config file, before
// validation and normalization.
type rawTask struct {
	Command    string            `yaml:"command" toml:"command" json:"command"`
	Deps       []string          `yaml:"deps" toml:"deps" json:"deps"`
	Env        map[string]string `yaml:"env" toml:"env" json:"env"`
	WorkingDir string            `yaml:"working_dir" toml:"working_dir" json:"working_dir"`
}

type rawProject struct {
	Tasks map[string]rawTask `yaml:"tasks" toml:"tasks" json:"tasks"`
}

// LoadProject reads and validates a project config file. The format is
// chosen by file extension: .yaml/.yml, .toml, or .json. The returned
// project satisfies every invariant the graph and executor rely on:
// non-empty unique ids, non-empty commands, resolvable deduplicated
// dependency lists, and no self-dependencies.
func LoadProject(path string) (*models.Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errf("config file not found: %s", abs)
	}
	if info.IsDir() {
		return nil, errf("config path is not a file: %s", abs)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	raw, err := parse(abs, data)
	if err != nil {
		return nil, err
	}

	return buildProject(raw)
}

func parse(path string, data []byte) (*rawProject, error) {
	var raw rawProject

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil {
			return nil, errf("%s: invalid YAML: %v", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &raw)
		if err != nil {
			return nil, errf("%s: invalid TOML: %v", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errf("%s: unknown field %q", path, undecoded[0].String())
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, errf("%s: invalid JSON: %v", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q (expected .yaml/.yml, .toml, or .json)", models.ErrUnsupportedFormat, ext)
	}

	return &raw, nil
}

func buildProject(raw *rawProject) (*models.Project, error) {
	if raw.Tasks == nil {
		return nil, errf("missing 'tasks' section")
	}
	if len(raw.Tasks) == 0 {
		return nil, errf("config must define at least one task")
	}

	// Validate in sorted id order so failures are reported deterministically.
	ids := make([]string, 0, len(raw.Tasks))
	for id := range raw.Tasks {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	tasks := make(map[string]models.Task, len(raw.Tasks))
	for _, id := range ids {
		norm := strings.TrimSpace(id)
		if norm == "" {
			return nil, errf("task id must not be empty")
		}
		if _, dup := tasks[norm]; dup {
			return nil, errf("duplicate task id after normalization: %s", norm)
		}

		task, err := buildTask(norm, raw.Tasks[id])
		if err != nil {
			return nil, err
		}
		tasks[norm] = task
	}

	for _, task := range tasks {
		for _, dep := range task.Deps {
			if _, ok := tasks[dep]; !ok {
				return nil, errf("task %q has unknown dependency %q", task.ID, dep)
			}
		}
	}

	return &models.Project{Tasks: tasks}, nil
}

func buildTask(id string, raw rawTask) (models.Task, error) {
	command := strings.TrimSpace(raw.Command)
	if command == "" {
		return models.Task{}, errf("task %q: missing 'command'", id)
	}

	// Duplicate dependencies are dropped, keeping the first occurrence.
	deps := make([]string, 0, len(raw.Deps))
	seen := make(map[string]bool, len(raw.Deps))
	for _, item := range raw.Deps {
		dep := strings.TrimSpace(item)
		if dep == "" {
			return models.Task{}, errf("task %q: a dependency is empty", id)
		}
		if dep == id {
			return models.Task{}, errf("task %q: a task cannot depend on itself", id)
		}
		if seen[dep] {
			continue
		}
		deps = append(deps, dep)
		seen[dep] = true
	}

	env := make(map[string]string, len(raw.Env))
	for key, value := range raw.Env {
		k := strings.TrimSpace(key)
		if k == "" {
			return models.Task{}, errf("task %q: an env key is empty", id)
		}
		env[k] = value
	}

	workingDir := strings.TrimSpace(raw.WorkingDir)
	if workingDir == "" && raw.WorkingDir != "" {
		return models.Task{}, errf("task %q: 'working_dir' must not be blank", id)
	}

	return models.Task{
		ID:         id,
		Command:    command,
		Deps:       deps,
		Env:        env,
		WorkingDir: workingDir,
	}, nil
}

func errf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", models.ErrInvalidConfig, fmt.Sprintf(format, args...))
}
