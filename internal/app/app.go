// Package app implements the application layer for hob.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.trai.ch/hob/internal/core/domain"
	"go.trai.ch/hob/internal/core/ports"
	"go.trai.ch/hob/internal/engine/watchloop"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	watcher      ports.Watcher
	stdout       io.Writer
	stderr       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	log ports.Logger,
	watcher ports.Watcher,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		watcher:      watcher,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithStreams overrides the subprocess output streams.
// This is primarily used for testing.
func (a *App) WithStreams(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// Run executes the named task once and reports its result. The returned
// error covers configuration and lookup problems; execution outcomes,
// including failures, are carried in the RunResult.
func (a *App) Run(ctx context.Context, name string) (domain.RunResult, error) {
	task, err := a.lookup(name)
	if err != nil {
		return domain.RunResult{}, err
	}

	a.logger.Info("running task " + task.Name)
	result := a.executor.Run(ctx, task, a.stdout, a.stderr)
	a.report(result)

	return result, nil
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	// Paths overrides the task's configured watch paths.
	Paths []string
	// Debounce overrides the task's configured debounce window.
	Debounce time.Duration
}

// Watch runs the named task whenever its watched paths change, until ctx is
// cancelled. Paths fall back from the options to the task's watch config to
// the project root. A clean shutdown returns nil.
func (a *App) Watch(ctx context.Context, name string, opts WatchOptions) error {
	task, err := a.lookup(name)
	if err != nil {
		return err
	}

	paths := opts.Paths
	if len(paths) == 0 {
		paths = task.Watch.Paths
	}
	if len(paths) == 0 {
		root, rootErr := a.configLoader.DiscoverRoot(".")
		if rootErr != nil {
			return zerr.Wrap(rootErr, domain.ErrFailedToGetRoot.Error())
		}
		paths = []string{root}
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = task.Watch.Debounce
	}

	loop := watchloop.New(a.executor, a.watcher, a.logger, debounce, a.stdout, a.stderr)

	return loop.Run(ctx, task, paths)
}

// List returns all configured tasks in name order.
func (a *App) List(_ context.Context) ([]*domain.Task, error) {
	registry, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	tasks := make([]*domain.Task, 0, registry.Len())
	for _, name := range registry.Names() {
		task, taskErr := registry.Task(name)
		if taskErr != nil {
			return nil, taskErr
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (a *App) lookup(name string) (*domain.Task, error) {
	if name == "" {
		return nil, domain.ErrNoTaskSpecified
	}

	registry, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	return registry.Task(name)
}

func (a *App) report(result domain.RunResult) {
	switch result.Outcome {
	case domain.OutcomeSuccess:
		a.logger.Info(fmt.Sprintf("task %s succeeded in %s", result.Task, result.Duration.Round(time.Millisecond)))
	case domain.OutcomeCancelled:
		a.logger.Info(fmt.Sprintf("task %s cancelled", result.Task))
	case domain.OutcomeCommandFailure, domain.OutcomeSpawnFailure:
		a.logger.Error(result.Err)
	}
}
