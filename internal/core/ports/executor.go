// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/hob/internal/core/domain"
)

// Executor defines the interface for executing tasks.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the task's command lines strictly in order, streaming
	// subprocess output to stdout/stderr as it is produced. A later line
	// never starts before the prior one exits successfully.
	//
	// The returned RunResult reports the outcome: a non-zero exit halts
	// the sequence as OutcomeCommandFailure with the failing line's index
	// and exit code; a line that cannot be started halts the sequence as
	// OutcomeSpawnFailure; cancelling ctx (or exceeding the task timeout)
	// terminates the in-flight subprocess and yields OutcomeCancelled.
	Run(ctx context.Context, task *domain.Task, stdout, stderr io.Writer) domain.RunResult
}
