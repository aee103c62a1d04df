// Package strings provides the string helpers used to build query parameters.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{" 2024", "2025", "2024", ""})
//	// Returns: []string{"2024", "2025"}
func DedupeAndTrim(values []string) []string {
	return dedupe(values, strings.TrimSpace)
}

// DedupeAndTrimLower is like DedupeAndTrim but also lowercases each element.
//
// Example:
//
//	DedupeAndTrimLower([]string{" BY", "by", "Nw"})
//	// Returns: []string{"by", "nw"}
func DedupeAndTrimLower(values []string) []string {
	return dedupe(values, func(v string) string {
		return strings.ToLower(strings.TrimSpace(v))
	})
}

// JoinCSV dedupes values with DedupeAndTrim and joins them with commas.
// It returns "" when nothing is left.
func JoinCSV(values []string) string {
	return strings.Join(DedupeAndTrim(values), ",")
}

func dedupe(values []string, normalize func(string) string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		normalized := normalize(v)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; !ok {
			seen[normalized] = struct{}{}
			result = append(result, normalized)
		}
	}

	return result
}
