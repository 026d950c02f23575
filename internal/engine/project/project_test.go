package project_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	markerName = ".ccls"
	flagsName  = "compile_flags.txt"
)

// tempRoot returns a symlink-free temporary directory.
func tempRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return root
}

// writeProject creates dir with both project files.
func writeProject(t *testing.T, dir, flags, marker string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, flagsName), []byte(flags), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, markerName), []byte(marker), 0o600))
}

// containsMatcher matches strings holding a substring.
type containsMatcher struct{ sub string }

func (m containsMatcher) Matches(x any) bool {
	s, ok := x.(string)
	return ok && strings.Contains(s, m.sub)
}

func (m containsMatcher) String() string {
	return "contains " + m.sub
}

func gomockContains(sub string) containsMatcher {
	return containsMatcher{sub: sub}
}
