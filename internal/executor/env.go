package executor

import (
	"sort"
	"strings"
)

// mergeEnv returns base with overrides applied. An override replaces every
// inherited entry with the same key; other inherited entries are kept.
func mergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}

	out := make([]string, 0, len(base)+len(overrides))
	for _, entry := range base {
		key, _, _ := strings.Cut(entry, "=")
		if key != "" && overridden(overrides, key) {
			continue
		}
		out = append(out, entry)
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		out = append(out, key+"="+overrides[key])
	}
	return out
}

func overridden(overrides map[string]string, key string) bool {
	if _, ok := overrides[key]; ok {
		return true
	}
	if !foldEnvKeys {
		return false
	}
	for candidate := range overrides {
		if strings.EqualFold(candidate, key) {
			return true
		}
	}
	return false
}
