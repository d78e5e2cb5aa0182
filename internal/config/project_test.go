package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spachava753/taskforge/internal/config"
	"github.com/spachava753/taskforge/internal/models"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadProjectYAML(t *testing.T) {
	path := writeConfig(t, "taskforge.yml", `tasks:
  build:
    command: "go build ./..."
    deps: [generate, generate, lint]
    env:
      CGO_ENABLED: "0"
    working_dir: ./src
  generate:
    command: "go generate ./..."
  lint:
    command: "golangci-lint run"
`)

	project, err := config.LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if project.Len() != 3 {
		t.Fatalf("expected 3 tasks, got %d", project.Len())
	}

	build, ok := project.Task("build")
	if !ok {
		t.Fatal("missing task build")
	}
	if build.Command != "go build ./..." {
		t.Errorf("unexpected command: %q", build.Command)
	}
	// Duplicates dropped, first-seen order preserved.
	if want := []string{"generate", "lint"}; !slices.Equal(build.Deps, want) {
		t.Errorf("expected deps %v, got %v", want, build.Deps)
	}
	if build.Env["CGO_ENABLED"] != "0" {
		t.Errorf("expected env override, got %v", build.Env)
	}
	if build.WorkingDir != "./src" {
		t.Errorf("expected working dir ./src, got %q", build.WorkingDir)
	}
}

func TestLoadProjectTOML(t *testing.T) {
	path := writeConfig(t, "taskforge.toml", `[tasks.test]
command = "go test ./..."
deps = ["build"]

[tasks.build]
command = "go build ./..."

[tasks.build.env]
GOFLAGS = "-trimpath"
`)

	project, err := config.LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	test, ok := project.Task("test")
	if !ok {
		t.Fatal("missing task test")
	}
	if want := []string{"build"}; !slices.Equal(test.Deps, want) {
		t.Errorf("expected deps %v, got %v", want, test.Deps)
	}

	build, _ := project.Task("build")
	if build.Env["GOFLAGS"] != "-trimpath" {
		t.Errorf("expected env override, got %v", build.Env)
	}
}

func TestLoadProjectJSON(t *testing.T) {
	path := writeConfig(t, "taskforge.json", `{
  "tasks": {
    "a": {"command": "echo a"},
    "b": {"command": "echo b", "deps": ["a"]}
  }
}`)

	project, err := config.LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if want := []string{"a", "b"}; !slices.Equal(project.TaskIDs(), want) {
		t.Errorf("expected ids %v, got %v", want, project.TaskIDs())
	}
}

func TestLoadProjectMissingFile(t *testing.T) {
	_, err := config.LoadProject(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, models.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadProjectDirectoryPath(t *testing.T) {
	_, err := config.LoadProject(t.TempDir() + "/")
	if !errors.Is(err, models.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadProjectUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "taskforge.txt", "tasks: {}")

	_, err := config.LoadProject(path)
	if !errors.Is(err, models.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadProjectInvalidSyntax(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad.yaml", "tasks: ["},
		{"bad.toml", "[tasks\ncommand ="},
		{"bad.json", `{"tasks": `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.name, tc.content)
			_, err := config.LoadProject(path)
			if !errors.Is(err, models.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadProjectValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing tasks section", "{}\n"},
		{"empty tasks", "tasks: {}\n"},
		{"missing command", "tasks:\n  a: {}\n"},
		{"blank command", "tasks:\n  a:\n    command: \"   \"\n"},
		{"blank task id", "tasks:\n  \"  \":\n    command: echo\n"},
		{"empty dep", "tasks:\n  a:\n    command: echo\n    deps: [\"  \"]\n"},
		{"self dependency", "tasks:\n  a:\n    command: echo\n    deps: [a]\n"},
		{"unknown dependency", "tasks:\n  a:\n    command: echo\n    deps: [ghost]\n"},
		{"unknown field", "tasks:\n  a:\n    command: echo\n    timeout: 5\n"},
		{"blank working_dir", "tasks:\n  a:\n    command: echo\n    working_dir: \"   \"\n"},
		{"duplicate id after trim", "tasks:\n  a:\n    command: echo\n  \" a\":\n    command: echo\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, "taskforge.yml", tc.content)
			_, err := config.LoadProject(path)
			if !errors.Is(err, models.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadProjectTrimsIDsAndCommands(t *testing.T) {
	path := writeConfig(t, "taskforge.yml", `tasks:
  " a ":
    command: "  echo a  "
  b:
    command: echo b
    deps: [" a "]
`)

	project, err := config.LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	a, ok := project.Task("a")
	if !ok {
		t.Fatalf("expected normalized id a, have %v", project.TaskIDs())
	}
	if a.Command != "echo a" {
		t.Errorf("expected trimmed command, got %q", a.Command)
	}

	b, _ := project.Task("b")
	if want := []string{"a"}; !slices.Equal(b.Deps, want) {
		t.Errorf("expected trimmed dep %v, got %v", want, b.Deps)
	}
}
