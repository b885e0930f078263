package app_test

import (
	"context"
	"io"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hob/internal/app"
	"go.trai.ch/hob/internal/core/domain"
	"go.trai.ch/hob/internal/core/ports"
	"go.trai.ch/hob/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRegistry(t *testing.T, tasks ...*domain.Task) *domain.Registry {
	t.Helper()

	registry := domain.NewRegistry()
	registry.SetRoot("/project")
	for _, task := range tasks {
		require.NoError(t, registry.AddTask(task))
	}
	return registry
}

func emptyEvents() iter.Seq[ports.WatchEvent] {
	return func(func(ports.WatchEvent) bool) {}
}

func TestApp_Run_Success(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockExecutor := mocks.NewMockExecutor(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockWatcher := mocks.NewMockWatcher(ctrl)

	task := &domain.Task{Name: "build-arm64", Commands: []domain.CommandLine{{Line: "cargo build"}}}
	mockLoader.EXPECT().Load(".").Return(newRegistry(t, task), nil)
	mockExecutor.EXPECT().
		Run(gomock.Any(), task, gomock.Any(), gomock.Any()).
		Return(domain.RunResult{Task: "build-arm64", Outcome: domain.OutcomeSuccess, FailedIndex: -1, Duration: time.Second})
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	a := app.New(mockLoader, mockExecutor, mockLogger, mockWatcher).WithStreams(io.Discard, io.Discard)

	result, err := a.Run(context.Background(), "build-arm64")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSuccess, result.Outcome)
	assert.False(t, result.Failed())
}

func TestApp_Run_CommandFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockExecutor := mocks.NewMockExecutor(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockWatcher := mocks.NewMockWatcher(ctrl)

	task := &domain.Task{Name: "build-arm64"}
	failed := domain.RunResult{
		Task:        "build-arm64",
		Outcome:     domain.OutcomeCommandFailure,
		FailedIndex: 1,
		ExitCode:    101,
		Err:         domain.ErrTaskExecutionFailed,
	}
	mockLoader.EXPECT().Load(".").Return(newRegistry(t, task), nil)
	mockExecutor.EXPECT().Run(gomock.Any(), task, gomock.Any(), gomock.Any()).Return(failed)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(failed.Err)

	a := app.New(mockLoader, mockExecutor, mockLogger, mockWatcher).WithStreams(io.Discard, io.Discard)

	result, err := a.Run(context.Background(), "build-arm64")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCommandFailure, result.Outcome)
	assert.Equal(t, 1, result.FailedIndex)
	assert.Equal(t, 101, result.ExitCode)
}

func TestApp_Run_UnknownTask(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLoader.EXPECT().Load(".").Return(newRegistry(t), nil)

	a := app.New(mockLoader, mocks.NewMockExecutor(ctrl), mockLogger, mocks.NewMockWatcher(ctrl))

	_, err := a.Run(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestApp_Run_NoTaskSpecified(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := app.New(
		mocks.NewMockConfigLoader(ctrl),
		mocks.NewMockExecutor(ctrl),
		mocks.NewMockLogger(ctrl),
		mocks.NewMockWatcher(ctrl),
	)

	_, err := a.Run(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrNoTaskSpecified)
}

func TestApp_Watch_UsesTaskPaths(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockWatcher := mocks.NewMockWatcher(ctrl)

	task := &domain.Task{
		Name:  "dev",
		Watch: domain.WatchConfig{Paths: []string{"/project/src"}},
	}
	mockLoader.EXPECT().Load(".").Return(newRegistry(t, task), nil)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	// The watcher sees the task's configured paths; the empty event stream
	// shuts the loop down cleanly.
	mockWatcher.EXPECT().Start(gomock.Any(), []string{"/project/src"}).Return(nil)
	mockWatcher.EXPECT().Events().Return(emptyEvents())
	mockWatcher.EXPECT().Stop().Return(nil)

	a := app.New(mockLoader, mocks.NewMockExecutor(ctrl), mockLogger, mockWatcher).
		WithStreams(io.Discard, io.Discard)

	require.NoError(t, a.Watch(context.Background(), "dev", app.WatchOptions{}))
}

func TestApp_Watch_DefaultsToProjectRoot(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockWatcher := mocks.NewMockWatcher(ctrl)

	task := &domain.Task{Name: "dev"}
	mockLoader.EXPECT().Load(".").Return(newRegistry(t, task), nil)
	mockLoader.EXPECT().DiscoverRoot(".").Return("/project", nil)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	mockWatcher.EXPECT().Start(gomock.Any(), []string{"/project"}).Return(nil)
	mockWatcher.EXPECT().Events().Return(emptyEvents())
	mockWatcher.EXPECT().Stop().Return(nil)

	a := app.New(mockLoader, mocks.NewMockExecutor(ctrl), mockLogger, mockWatcher).
		WithStreams(io.Discard, io.Discard)

	require.NoError(t, a.Watch(context.Background(), "dev", app.WatchOptions{}))
}

func TestApp_Watch_PathOverride(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockWatcher := mocks.NewMockWatcher(ctrl)

	task := &domain.Task{
		Name:  "dev",
		Watch: domain.WatchConfig{Paths: []string{"/project/src"}},
	}
	mockLoader.EXPECT().Load(".").Return(newRegistry(t, task), nil)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	// An explicit override wins over the task's configured paths.
	mockWatcher.EXPECT().Start(gomock.Any(), []string{"/project/assets"}).Return(nil)
	mockWatcher.EXPECT().Events().Return(emptyEvents())
	mockWatcher.EXPECT().Stop().Return(nil)

	a := app.New(mockLoader, mocks.NewMockExecutor(ctrl), mockLogger, mockWatcher).
		WithStreams(io.Discard, io.Discard)

	opts := app.WatchOptions{Paths: []string{"/project/assets"}}
	require.NoError(t, a.Watch(context.Background(), "dev", opts))
}

func TestApp_List(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	registry := newRegistry(t,
		&domain.Task{Name: "dev"},
		&domain.Task{Name: "build-arm64"},
	)
	mockLoader.EXPECT().Load(".").Return(registry, nil)

	a := app.New(mockLoader, mocks.NewMockExecutor(ctrl), mocks.NewMockLogger(ctrl), mocks.NewMockWatcher(ctrl))

	tasks, err := a.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "build-arm64", tasks[0].Name)
	assert.Equal(t, "dev", tasks[1].Name)
}
