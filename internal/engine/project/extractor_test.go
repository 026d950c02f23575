package project_test

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/connector/internal/adapters/fs"
	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports/mocks"
	"go.trai.ch/connector/internal/engine/project"
	"go.uber.org/mock/gomock"
)

func TestExtractor_Extract(t *testing.T) {
	root := tempRoot(t)
	writeProject(t, root,
		"-I/proj/include\n-Iinc\n-isystem /usr/include\n-Wall\n-I/proj/include\r\n",
		"clang\n%c -std=c11\n-I/proj/third_party\n-I/proj/include\n",
	)

	set, err := project.NewExtractor(fs.NewOS()).Extract(
		filepath.Join(root, flagsName),
		filepath.Join(root, markerName),
	)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"-I/proj/include",
		"-isystem /usr/include",
		"-I/proj/third_party",
	}, set.Ordered)
	assert.Equal(t, []string{
		"-I/proj/include",
		"-I/proj/third_party",
		"-isystem /usr/include",
	}, set.Sorted)
}

func TestExtractor_Extract_NoTrailingNewline(t *testing.T) {
	root := tempRoot(t)
	writeProject(t, root, "-I/a", "-I/b")

	set, err := project.NewExtractor(fs.NewOS()).Extract(
		filepath.Join(root, flagsName),
		filepath.Join(root, markerName),
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"-I/a", "-I/b"}, set.Ordered)
}

func TestExtractor_Extract_Empty(t *testing.T) {
	root := tempRoot(t)
	writeProject(t, root, "", "clang\n")

	set, err := project.NewExtractor(fs.NewOS()).Extract(
		filepath.Join(root, flagsName),
		filepath.Join(root, markerName),
	)

	require.NoError(t, err)
	assert.Empty(t, set.Ordered)
	assert.Empty(t, set.Sorted)
}

func TestExtractor_Extract_CandidateLimit(t *testing.T) {
	var b strings.Builder
	for i := range domain.MaxCandidates + 50 {
		fmt.Fprintf(&b, "-I/inc/%05d\n", i)
	}

	ctrl := gomock.NewController(t)
	filesystem := mocks.NewMockFilesystem(ctrl)
	filesystem.EXPECT().Open("/p/flags").Return(io.NopCloser(strings.NewReader(b.String())), nil)
	filesystem.EXPECT().Open("/p/marker").Return(io.NopCloser(strings.NewReader("-I/late\n")), nil)

	set, err := project.NewExtractor(filesystem).Extract("/p/flags", "/p/marker")

	require.NoError(t, err)
	assert.Len(t, set.Ordered, domain.MaxCandidates-1)
	assert.NotContains(t, set.Ordered, "-I/late")
	assert.True(t, slices.IsSorted(set.Sorted))
}

func TestExtractor_Extract_OpenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	filesystem := mocks.NewMockFilesystem(ctrl)
	filesystem.EXPECT().Open("/p/flags").Return(io.NopCloser(strings.NewReader("-I.\n")), nil)
	filesystem.EXPECT().Open("/p/marker").Return(nil, errors.New("permission denied"))

	_, err := project.NewExtractor(filesystem).Extract("/p/flags", "/p/marker")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
}
