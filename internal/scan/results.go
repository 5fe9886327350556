// Package scan defines the result model shared by the engine and the output
// sinks: one entry per scanned (repository, branch) pair.
package scan

import "sort"

// ResultMap maps a result key ("owner/name:branch") to the branch's outcome:
// the empty string when the branch passed, or the gitleaks report path when
// the scan found leaks. Keys never collide across workers because each
// (repository, branch) pair is scanned by exactly one worker.
type ResultMap map[string]string

// Passed reports whether the entry for key recorded a clean scan.
func (m ResultMap) Passed(key string) bool {
	return m[key] == ""
}

// FailedKeys returns the keys with findings, sorted for stable output.
func (m ResultMap) FailedKeys() []string {
	var keys []string
	for k, v := range m {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Merge computes the disjoint union of the workers' partial maps. No conflict
// resolution is needed: partial maps from distinct assignments share no keys.
func Merge(parts ...ResultMap) ResultMap {
	merged := make(ResultMap)
	for _, part := range parts {
		for k, v := range part {
			merged[k] = v
		}
	}
	return merged
}
