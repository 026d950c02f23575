package shell_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/connector/internal/adapters/shell"
	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestExecutor_Output(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)
	out, err := executor.Output(context.Background(), "sh", "-c", "echo 'Target: x86_64-pc-linux-gnu'")

	require.NoError(t, err)
	assert.Equal(t, "Target: x86_64-pc-linux-gnu\n", string(out))
}

func TestExecutor_Output_ExtraEnv(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	t.Setenv("CONNECTOR_INHERITED", "yes")

	executor := shell.NewExecutor(mockLogger, "LC_ALL=C")
	out, err := executor.Output(context.Background(), "sh", "-c", "echo $LC_ALL $CONNECTOR_INHERITED")

	require.NoError(t, err)
	assert.Equal(t, "C yes\n", string(out))
}

func TestExecutor_Output_StderrToDebug(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug("warning: unused").Times(1)

	executor := shell.NewExecutor(mockLogger)
	out, err := executor.Output(context.Background(), "sh", "-c", "echo ok; echo 'warning: unused' >&2")

	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(out))
}

func TestExecutor_Output_NonZeroExitKeepsStdout(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)
	out, err := executor.Output(context.Background(), "sh", "-c", "echo COMPLETION: foo; exit 1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProcess)
	assert.Equal(t, "COMPLETION: foo\n", string(out))
}

func TestExecutor_Output_SpawnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)
	_, err := executor.Output(context.Background(), "definitely-not-a-real-binary-4242")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProcess)
}

func TestExecutor_Output_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	executor := shell.NewExecutor(mockLogger)
	_, err := executor.Output(ctx, "sleep", "5")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProcess)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExecutor_Run_Streams(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	var stdout, stderr bytes.Buffer
	executor := shell.NewExecutor(mockLogger)
	err := executor.Run(context.Background(), &stdout, &stderr, "sh", "-c", "echo indexed; echo note >&2")

	require.NoError(t, err)
	assert.Equal(t, "indexed\n", stdout.String())
	assert.Equal(t, "note\n", stderr.String())
}

func TestExecutor_Run_NilWritersGoToLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("line1").Times(1)
	mockLogger.EXPECT().Info("line2").Times(1)
	mockLogger.EXPECT().Warn("oops").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Run(context.Background(), nil, nil, "sh", "-c", "echo line1; echo line2; echo oops >&2")

	require.NoError(t, err)
}

func TestExecutor_Run_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	var stdout, stderr bytes.Buffer
	executor := shell.NewExecutor(mockLogger)
	err := executor.Run(context.Background(), &stdout, &stderr, "sh", "-c", "exit 3")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProcess)
}
