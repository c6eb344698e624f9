// Package gate decides whether build observation is active for a run.
//
// The decision is a pure function of the loaded configuration and a set of
// task names. It is evaluated twice per run: once at run start with the
// requested task names, and again at run end with the task names actually
// known by then. A task list discovered late can retroactively disable
// reporting, in which case the in-progress report is discarded.
//
// Import rules:
//   - CAN import: internal/config, std lib
//   - MUST NOT import: internal/report, internal/listener, internal/run
package gate

import (
	"strings"

	"github.com/mrz1836/buildtrack/internal/config"
)

// IsActive reports whether observation is active for the given configuration
// and task names. It is deterministic, has no side effects, and may be called
// multiple times with different task-name sets for the same config.
//
// Decision order:
//  1. Disabled config → inactive unconditionally.
//  2. Empty task list → active (name filters cannot be evaluated).
//  3. Non-empty include list (blank entries ignored) → active iff any task
//     name ends with any listed suffix. Fully overrides the exclude list.
//  4. Non-empty exclude list → active iff no task name ends with any suffix.
//  5. Otherwise active.
func IsActive(cfg *config.Config, taskNames []string) bool {
	if cfg == nil || cfg.Disabled {
		return false
	}
	if len(taskNames) == 0 {
		return true
	}

	if include := nonBlank(cfg.EnabledForTasksWithName); len(include) > 0 {
		return anySuffixMatch(taskNames, include)
	}

	if exclude := nonBlank(cfg.DisabledForTasksWithName); len(exclude) > 0 {
		return !anySuffixMatch(taskNames, exclude)
	}

	return true
}

// anySuffixMatch reports whether any task name ends with any of the given
// suffixes, comparing case-insensitively.
func anySuffixMatch(taskNames, suffixes []string) bool {
	for _, name := range taskNames {
		lowerName := strings.ToLower(name)
		for _, suffix := range suffixes {
			if strings.HasSuffix(lowerName, strings.ToLower(suffix)) {
				return true
			}
		}
	}
	return false
}

// nonBlank filters out blank entries so an all-blank filter list behaves the
// same as an absent one.
func nonBlank(entries []string) []string {
	out := entries[:0:0]
	for _, e := range entries {
		if strings.TrimSpace(e) != "" {
			out = append(out, e)
		}
	}
	return out
}
