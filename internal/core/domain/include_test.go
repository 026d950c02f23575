package domain_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/connector/internal/core/domain"
)

func TestIsIncludeFlag(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"-I.", true},
		{"-I/usr/include", true},
		{"-isystem /opt/sdk/include", true},
		{"%c -isystem/usr/lib/clang/include", true},
		{"-Iinc", false},
		{"-Iinc/sub", false},
		{"-std=c11", false},
		{"clang", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.IsIncludeFlag(tt.line))
		})
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"empty", nil, []string{}},
		{"no duplicates", []string{"-Ia", "-Ib"}, []string{"-Ia", "-Ib"}},
		{"first occurrence wins", []string{"-Ix", "-Iy", "-Ix", "-Iz"}, []string{"-Ix", "-Iy", "-Iz"}},
		{"all equal", []string{"-Ia", "-Ia", "-Ia"}, []string{"-Ia"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.Dedupe(tt.input))
		})
	}
}

func TestNewIncludeSet(t *testing.T) {
	input := []string{"-I/b", "-isystem /z", "-I/a", "-I/b", "-I/c"}

	set := domain.NewIncludeSet(input)

	assert.Equal(t, []string{"-I/b", "-isystem /z", "-I/a", "-I/c"}, set.Ordered)
	assert.Equal(t, []string{"-I/a", "-I/b", "-I/c", "-isystem /z"}, set.Sorted)
	assert.True(t, slices.IsSorted(set.Sorted))
	assert.ElementsMatch(t, set.Ordered, set.Sorted)

	// The sorted view must not alias the ordered one.
	set.Sorted[0] = "changed"
	assert.Equal(t, "-I/b", set.Ordered[0])
}
