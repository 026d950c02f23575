package domain

import (
	"slices"
	"strings"
)

const (
	// IncludeFlag marks a generic include-path flag line.
	IncludeFlag = "-I"
	// SystemIncludeFlag marks a system include-path flag line.
	SystemIncludeFlag = "-isystem"
	// ExcludedIncludeFlag marks lines that are never treated as include flags.
	ExcludedIncludeFlag = "-Iinc"
)

// IncludeSet holds the include flags of a project in two views.
type IncludeSet struct {
	// Ordered keeps the order of first appearance across the config files.
	Ordered []string
	// Sorted is Ordered in byte-wise lexicographic order.
	Sorted []string
}

// IsIncludeFlag reports whether a config file line carries an include flag.
func IsIncludeFlag(line string) bool {
	if strings.Contains(line, ExcludedIncludeFlag) {
		return false
	}
	return strings.Contains(line, SystemIncludeFlag) || strings.Contains(line, IncludeFlag)
}

// Dedupe removes later exact duplicates, keeping each first occurrence in place.
func Dedupe(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}

// NewIncludeSet deduplicates the candidates and derives the sorted view.
func NewIncludeSet(candidates []string) IncludeSet {
	ordered := Dedupe(candidates)
	sorted := slices.Clone(ordered)
	slices.Sort(sorted)
	return IncludeSet{
		Ordered: ordered,
		Sorted:  sorted,
	}
}
