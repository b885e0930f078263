package shell

import (
	"slices"
	"strings"
)

// ResolveEnvironment layers a task's environment overlay on top of the
// ambient environment. Overlay keys replace the ambient value for that key,
// ambient-only keys pass through unchanged, and overlay-only keys are
// appended. The ambient slice is never modified; each call returns a fresh
// copy, so the calling process's environment stays untouched.
func ResolveEnvironment(ambient []string, overlay map[string]string) []string {
	result := make([]string, 0, len(ambient)+len(overlay))
	replaced := make(map[string]bool, len(overlay))

	for _, entry := range ambient {
		k, _, ok := strings.Cut(entry, "=")
		if ok {
			if v, override := overlay[k]; override {
				result = append(result, k+"="+v)
				replaced[k] = true
				continue
			}
		}
		result = append(result, entry)
	}

	// Keys present only in the overlay, appended in sorted order so the
	// resolved environment is deterministic.
	added := make([]string, 0, len(overlay))
	for k := range overlay {
		if !replaced[k] {
			added = append(added, k)
		}
	}
	slices.Sort(added)
	for _, k := range added {
		result = append(result, k+"="+overlay[k])
	}

	return result
}
