package executor

import (
	"slices"
	"strings"
)

// MergeEnv builds the environment for one task: the ambient snapshot with
// the task's overrides applied on top. Override keys win on conflict.
// Overrides are appended in sorted key order so the result is deterministic
// for a given input. The returned slice is freshly allocated; merging for
// one task never leaks into another.
func MergeEnv(ambient []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return slices.Clone(ambient)
	}

	merged := make([]string, 0, len(ambient)+len(overrides))
	for _, kv := range ambient {
		key, _, ok := strings.Cut(kv, "=")
		if ok {
			if _, shadowed := overrides[key]; shadowed {
				continue
			}
		}
		merged = append(merged, kv)
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		merged = append(merged, k+"="+overrides[k])
	}

	return merged
}
