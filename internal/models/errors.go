package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig is wrapped by every config validation failure.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrUnsupportedFormat is returned for config files whose extension is
	// not one of .yaml/.yml, .toml, .json.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// UnknownTargetError is returned when a subgraph order is requested for a
// task id that is not part of the project.
type UnknownTargetError struct {
	Target string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown target: %s", e.Target)
}

// CycleError is returned when the dependency graph contains a cycle. Cycle
// holds the closed loop: the first and last ids are equal.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return "cycle detected: " + strings.Join(e.Cycle, " -> ")
}
