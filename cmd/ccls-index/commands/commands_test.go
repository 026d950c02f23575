package commands_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/connector/cmd/ccls-index/commands"
	"go.trai.ch/connector/internal/adapters/cas"
	"go.trai.ch/connector/internal/adapters/fs"
	"go.trai.ch/connector/internal/adapters/telemetry"
	"go.trai.ch/connector/internal/app"
	"go.trai.ch/connector/internal/build"
	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports/mocks"
	"go.trai.ch/connector/internal/engine/completion"
	"go.trai.ch/connector/internal/engine/project"
	"go.uber.org/mock/gomock"
)

func newApp(t *testing.T, executor *mocks.MockExecutor) *app.App {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	settings := domain.DefaultSettings()
	filesystem := fs.NewOS()
	tel := telemetry.NewNoOp()
	store := cas.Empty("")
	locator := project.NewLocator(filesystem, settings.MarkerFile, settings.FlagsFile)
	builder := completion.NewBuilder(completion.Deps{
		Filesystem: filesystem,
		Locator:    locator,
		Extractor:  project.NewExtractor(filesystem),
		Probe:      project.NewTargetProbe(executor, settings.Compiler, settings.ProbeTimeout),
		Cache:      project.NewCache(filesystem, log, settings.MaxIncludePaths),
		Store:      store,
		Hasher:     fs.NewHasher(),
		Telemetry:  tel,
		Logger:     log,
	}, settings.Compiler)

	return app.New(settings, filesystem, builder, locator, executor, store,
		mocks.NewMockWatcher(ctrl), mocks.NewMockResultWriter(ctrl), tel, log)
}

func TestIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".ccls"), []byte("clang\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "compile_flags.txt"), []byte("-I.\n"), 0o600))
	sub := filepath.Join(root, "src", "net")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	executor.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), "ccls", "--index", root).
		DoAndReturn(func(_ context.Context, stdout, _ io.Writer, _ string, _ ...string) error {
			_, err := io.WriteString(stdout, "done\n")
			return err
		})

	cli := commands.New(newApp(t, executor))
	cli.SetArgs([]string{sub})
	var out bytes.Buffer
	cli.SetOutput(&out)

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "done\n", out.String())
}

func TestIndex_NoProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	cli := commands.New(newApp(t, mocks.NewMockExecutor(ctrl)))
	cli.SetArgs([]string{t.TempDir()})
	cli.SetOutput(io.Discard)

	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestIndex_RequiresDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	cli := commands.New(newApp(t, mocks.NewMockExecutor(ctrl)))
	cli.SetArgs([]string{})
	cli.SetOutput(io.Discard)

	require.Error(t, cli.Execute(context.Background()))
}

func TestVersionFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	cli := commands.New(newApp(t, mocks.NewMockExecutor(ctrl)))
	cli.SetArgs([]string{"--version"})
	var out bytes.Buffer
	cli.SetOutput(&out)

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, build.Version+"\n", out.String())
}
