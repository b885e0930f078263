package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hob/cmd/hob/commands"
	"go.trai.ch/hob/internal/app"
	"go.trai.ch/hob/internal/build"
	"go.trai.ch/hob/internal/core/domain"
)

type mockApp struct {
	runFunc   func(ctx context.Context, name string) (domain.RunResult, error)
	watchFunc func(ctx context.Context, name string, opts app.WatchOptions) error
	listFunc  func(ctx context.Context) ([]*domain.Task, error)
}

func (m *mockApp) Run(ctx context.Context, name string) (domain.RunResult, error) {
	if m.runFunc != nil {
		return m.runFunc(ctx, name)
	}
	return domain.RunResult{Task: name, Outcome: domain.OutcomeSuccess, FailedIndex: -1}, nil
}

func (m *mockApp) Watch(ctx context.Context, name string, opts app.WatchOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, name, opts)
	}
	return nil
}

func (m *mockApp) List(ctx context.Context) ([]*domain.Task, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

type fakeLogger struct {
	jsonMode bool
}

func (l *fakeLogger) Info(string)         {}
func (l *fakeLogger) Warn(string)         {}
func (l *fakeLogger) Error(error)         {}
func (l *fakeLogger) SetOutput(io.Writer) {}
func (l *fakeLogger) SetJSON(enable bool) { l.jsonMode = enable }

func newCLI(a commands.Application) (*commands.CLI, *bytes.Buffer) {
	cli := commands.New(a, &fakeLogger{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	return cli, buf
}

func TestCommands_Run(t *testing.T) {
	t.Run("passes task name through", func(t *testing.T) {
		var captured string
		mock := &mockApp{
			runFunc: func(_ context.Context, name string) (domain.RunResult, error) {
				captured = name
				return domain.RunResult{Task: name, Outcome: domain.OutcomeSuccess, FailedIndex: -1}, nil
			},
		}

		cli, _ := newCLI(mock)
		cli.SetArgs([]string{"run", "build-arm64"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "build-arm64", captured)
		assert.Equal(t, 0, cli.ExitCode())
	})

	t.Run("maps command failure to its exit code", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, name string) (domain.RunResult, error) {
				return domain.RunResult{
					Task:        name,
					Outcome:     domain.OutcomeCommandFailure,
					FailedIndex: 1,
					ExitCode:    3,
				}, nil
			},
		}

		cli, _ := newCLI(mock)
		cli.SetArgs([]string{"run", "build-arm64"})

		err := cli.Execute(context.Background())
		require.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
		assert.Equal(t, 3, cli.ExitCode())
	})

	t.Run("maps spawn failure to 127", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, name string) (domain.RunResult, error) {
				return domain.RunResult{Task: name, Outcome: domain.OutcomeSpawnFailure, FailedIndex: 0}, nil
			},
		}

		cli, _ := newCLI(mock)
		cli.SetArgs([]string{"run", "build-arm64"})

		err := cli.Execute(context.Background())
		require.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
		assert.Equal(t, 127, cli.ExitCode())
	})

	t.Run("maps cancellation to 130", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, name string) (domain.RunResult, error) {
				return domain.RunResult{Task: name, Outcome: domain.OutcomeCancelled, FailedIndex: -1}, nil
			},
		}

		cli, _ := newCLI(mock)
		cli.SetArgs([]string{"run", "dev"})

		err := cli.Execute(context.Background())
		require.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
		assert.Equal(t, 130, cli.ExitCode())
	})

	t.Run("returns lookup errors unchanged", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ string) (domain.RunResult, error) {
				return domain.RunResult{}, domain.ErrTaskNotFound
			},
		}

		cli, _ := newCLI(mock)
		cli.SetArgs([]string{"run", "nope"})

		err := cli.Execute(context.Background())
		require.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("shows usage when no task provided", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ string) (domain.RunResult, error) {
				panic("should not be called")
			},
		}

		cli, buf := newCLI(mock)
		cli.SetArgs([]string{"run"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "Usage:")
	})
}

func TestCommands_Watch(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.WatchOptions
		var capturedName string
		mock := &mockApp{
			watchFunc: func(_ context.Context, name string, opts app.WatchOptions) error {
				capturedName = name
				captured = opts
				return nil
			},
		}

		cli, _ := newCLI(mock)
		cli.SetArgs([]string{"watch", "dev", "--path", "src", "--path", "assets", "--debounce", "300ms"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "dev", capturedName)
		assert.Equal(t, []string{"src", "assets"}, captured.Paths)
		assert.Equal(t, 300*time.Millisecond, captured.Debounce)
	})

	t.Run("returns watch errors", func(t *testing.T) {
		mock := &mockApp{
			watchFunc: func(_ context.Context, _ string, _ app.WatchOptions) error {
				return errors.New("simulated error")
			},
		}

		cli, _ := newCLI(mock)
		cli.SetArgs([]string{"watch", "dev"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_List(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	t.Run("prints tasks with their first command", func(t *testing.T) {
		mock := &mockApp{
			listFunc: func(_ context.Context) ([]*domain.Task, error) {
				return []*domain.Task{
					{Name: "build-arm64", Commands: []domain.CommandLine{
						{Line: "cargo build --release --target aarch64-unknown-linux-gnu"},
						{Line: "ls -lh target/aarch64-unknown-linux-gnu/release"},
					}},
					{Name: "dev", Commands: []domain.CommandLine{{Line: "cargo watch -x run"}}},
				}, nil
			},
		}

		cli, buf := newCLI(mock)
		cli.SetArgs([]string{"list"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "build-arm64")
		assert.Contains(t, buf.String(), "cargo build --release --target aarch64-unknown-linux-gnu (+1 more)")
		assert.Contains(t, buf.String(), "dev")
		assert.Contains(t, buf.String(), "cargo watch -x run")
	})

	t.Run("handles empty configuration", func(t *testing.T) {
		cli, buf := newCLI(&mockApp{})
		cli.SetArgs([]string{"list"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "no tasks configured")
	})
}

func TestCommands_Version(t *testing.T) {
	cli, buf := newCLI(&mockApp{})
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), build.Version)
}

func TestCommands_JSONFlag(t *testing.T) {
	log := &fakeLogger{}
	cli := commands.New(&mockApp{}, log)
	cli.SetOutput(io.Discard, io.Discard)
	cli.SetArgs([]string{"list", "--json"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, log.jsonMode)
}
