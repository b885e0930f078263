// Package shell provides a shell-based executor for running tasks.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/creack/pty"
	"go.trai.ch/hob/internal/core/domain"
	"go.trai.ch/hob/internal/core/ports"
	"go.trai.ch/zerr"
)

// shellProgram interprets each command line. Lines are single
// shell-invocable strings, so control operators and expansions work.
const shellProgram = "sh"

// killDelay is how long a terminated subprocess gets to exit after SIGTERM
// before it is killed.
const killDelay = 5 * time.Second

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new shell Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run executes the task's command lines strictly in order and reports the
// outcome. Execution stops at the first line that fails to spawn or exits
// non-zero; remaining lines are never started.
func (e *Executor) Run(ctx context.Context, task *domain.Task, stdout, stderr io.Writer) domain.RunResult {
	start := time.Now()
	result := domain.RunResult{
		Task:        task.Name,
		Outcome:     domain.OutcomeSuccess,
		FailedIndex: -1,
	}

	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	env := ResolveEnvironment(os.Environ(), task.Environment)

	for i := range task.Commands {
		err := e.runLine(ctx, &task.Commands[i], env, stdout, stderr)
		if err == nil {
			continue
		}

		result.Duration = time.Since(start)
		result.FailedIndex = i
		result.ExitCode = -1
		result.Err = err

		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			result.Outcome = domain.OutcomeCancelled
		case errors.As(err, &exitErr):
			result.Outcome = domain.OutcomeCommandFailure
			result.ExitCode = exitErr.ExitCode()
		default:
			result.Outcome = domain.OutcomeSpawnFailure
		}
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// runLine runs a single command line in a PTY and blocks until it exits.
// The PTY merges the subprocess's stdout and stderr into one stream, which
// is forwarded to stdout as it is produced and mirrored line-buffered to
// the structured logger.
func (e *Executor) runLine(
	ctx context.Context,
	line *domain.CommandLine,
	env []string,
	stdout, _ io.Writer,
) error {
	outLog := &logWriter{logger: e.logger}
	finalStdout := io.MultiWriter(outLog, stdout)

	cmd := exec.CommandContext(ctx, shellProgram, "-c", line.Line) //nolint:gosec // user provided command
	cmd.Dir = line.WorkingDir
	cmd.Env = env

	// Cancellation is cooperative at the subprocess boundary: ask nicely
	// with SIGTERM first, fall back to SIGKILL after killDelay.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = killDelay

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start command"), "command", line.Line)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// Flush any buffered partial line once the stream ends.
		defer func() { _ = outLog.Close() }()

		_, _ = io.Copy(finalStdout, ptmx)
	}()

	err = cmd.Wait()

	// Wait for the IO copy loop to drain what the subprocess wrote. An
	// orphaned grandchild can keep the pty slave open past the command's
	// exit, so the drain is bounded; closing the master unblocks the copy.
	select {
	case <-ioDone:
	case <-time.After(killDelay):
		_ = ptmx.Close()
		<-ioDone
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			wrapped := zerr.Wrap(err, "command failed")
			wrapped = zerr.With(wrapped, "command", line.Line)
			return zerr.With(wrapped, "exit_code", exitErr.ExitCode())
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "command", line.Line)
	}

	return nil
}

// logWriter mirrors subprocess output to the structured logger, buffered
// per line so concurrent child output never interleaves partial lines.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := string(line)
	// PTYs may introduce \r. Remove it.
	msg = strings.TrimSuffix(msg, "\r")
	w.logger.Info(msg)
}
