// Package watchloop implements the watch-and-rerun loop: it monitors a set
// of paths for file system changes, debounces bursts of events into a
// single trigger, and re-runs a bound task, cancelling any in-flight run
// first.
package watchloop

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.trai.ch/hob/internal/core/domain"
	"go.trai.ch/hob/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// State represents the watch loop's position in its lifecycle.
type State string

const (
	// StateIdle indicates the loop is waiting for a file system event.
	StateIdle State = "Idle"
	// StateDebouncing indicates events arrived and the loop is waiting for
	// the burst to go quiet.
	StateDebouncing State = "Debouncing"
	// StateRunning indicates the bound task is executing.
	StateRunning State = "Running"
	// StateCancelling indicates an in-flight run is being cancelled and
	// awaited before the loop continues.
	StateCancelling State = "Cancelling"
)

// DefaultDebounce is the debounce window used when neither the task nor
// the operator configures one.
const DefaultDebounce = 200 * time.Millisecond

// Loop drives the watch-and-rerun cycle for a single task.
type Loop struct {
	executor ports.Executor
	watcher  ports.Watcher
	logger   ports.Logger
	debounce time.Duration
	stdout   io.Writer
	stderr   io.Writer

	mu    sync.Mutex
	state State
}

// New creates a Loop. A non-positive debounce falls back to DefaultDebounce.
func New(
	executor ports.Executor,
	watcher ports.Watcher,
	logger ports.Logger,
	debounce time.Duration,
	stdout, stderr io.Writer,
) *Loop {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Loop{
		executor: executor,
		watcher:  watcher,
		logger:   logger,
		debounce: debounce,
		stdout:   stdout,
		stderr:   stderr,
		state:    StateIdle,
	}
}

// State returns the loop's current state.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Run watches the given paths and re-runs task on change until ctx is
// cancelled. Any active run is cancelled and awaited before Run returns.
// A clean shutdown returns nil.
func (l *Loop) Run(ctx context.Context, task *domain.Task, paths []string) error {
	if err := l.watcher.Start(ctx, paths); err != nil {
		return zerr.Wrap(err, domain.ErrWatcherStartFailed.Error())
	}
	defer func() { _ = l.watcher.Stop() }()

	l.logger.Info(fmt.Sprintf("watching %d path(s) for task %s (debounce %s)", len(paths), task.Name, l.debounce))

	events := make(chan ports.WatchEvent)

	g, gctx := errgroup.WithContext(ctx)

	// Event pump: forwards watcher events to the dispatch loop.
	g.Go(func() error {
		defer close(events)
		for event := range l.watcher.Events() {
			select {
			case events <- event:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	g.Go(func() error {
		return l.dispatch(gctx, task, events)
	})

	return g.Wait()
}

// dispatch is the single control flow of the loop. It owns the debounce
// timer and the active run handle; all state transitions happen here.
func (l *Loop) dispatch(ctx context.Context, task *domain.Task, events <-chan ports.WatchEvent) error {
	debounce := newDebounceTimer(l.debounce)
	defer debounce.Stop()

	var active *runHandle

	for {
		// A nil handle yields a nil channel, which blocks forever.
		var done <-chan domain.RunResult
		if active != nil {
			done = active.done
		}

		select {
		case <-ctx.Done():
			// Shutdown: cancel-and-await the active run, discard any
			// pending debounce trigger.
			if active != nil {
				l.cancelAndAwait(active)
			}
			l.transition(StateIdle)
			return nil

		case event, ok := <-events:
			if !ok {
				if active != nil {
					l.cancelAndAwait(active)
				}
				return nil
			}

			// A change during an active run cancels it before the
			// debounce timer restarts. Two runs of one task never overlap.
			if active != nil {
				l.cancelAndAwait(active)
				active = nil
			}

			l.transition(StateDebouncing)
			l.logger.Info("change detected: " + event.Path)
			debounce.Reset()

		case <-debounce.C():
			debounce.Fired()
			l.transition(StateRunning)
			active = l.start(ctx, task)

		case result := <-done:
			active = nil
			l.report(result)
			l.transition(StateIdle)
		}
	}
}

// runHandle owns the live resources of one task execution: its
// cancellation signal and completion channel.
type runHandle struct {
	cancel context.CancelFunc
	done   chan domain.RunResult
}

func (l *Loop) start(ctx context.Context, task *domain.Task) *runHandle {
	runCtx, cancel := context.WithCancel(ctx)
	handle := &runHandle{
		cancel: cancel,
		done:   make(chan domain.RunResult, 1),
	}

	go func() {
		defer cancel()
		handle.done <- l.executor.Run(runCtx, task, l.stdout, l.stderr)
	}()

	return handle
}

func (l *Loop) cancelAndAwait(handle *runHandle) {
	l.transition(StateCancelling)
	handle.cancel()
	l.report(<-handle.done)
}

func (l *Loop) report(result domain.RunResult) {
	switch result.Outcome {
	case domain.OutcomeSuccess:
		l.logger.Info(fmt.Sprintf("task %s succeeded in %s", result.Task, result.Duration.Round(time.Millisecond)))
	case domain.OutcomeCancelled:
		l.logger.Info(fmt.Sprintf("task %s cancelled", result.Task))
	case domain.OutcomeCommandFailure, domain.OutcomeSpawnFailure:
		l.logger.Error(result.Err)
	}
}

func (l *Loop) transition(next State) {
	l.mu.Lock()
	prev := l.state
	l.state = next
	l.mu.Unlock()

	if prev != next {
		l.logger.Info("watch: " + string(next))
	}
}
