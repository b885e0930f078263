package domain

import "time"

// Outcome classifies how one execution of a task ended.
type Outcome string

const (
	// OutcomeSuccess indicates every command line exited zero.
	OutcomeSuccess Outcome = "Success"
	// OutcomeCommandFailure indicates a command line ran and exited non-zero.
	OutcomeCommandFailure Outcome = "CommandFailure"
	// OutcomeSpawnFailure indicates a command line could not be started.
	OutcomeSpawnFailure Outcome = "SpawnFailure"
	// OutcomeCancelled indicates the run was stopped by a new trigger,
	// a timeout, or a shutdown request. Not treated as a task failure.
	OutcomeCancelled Outcome = "Cancelled"
)

// RunResult reports one finished execution of a task.
type RunResult struct {
	Task    string
	Outcome Outcome

	// FailedIndex is the index of the command line that ended the run,
	// or -1 when every line succeeded.
	FailedIndex int

	// ExitCode is the exit code of the failing command line. It is zero on
	// success and -1 when no exit code could be determined.
	ExitCode int

	// Duration is the aggregate wall-clock time of the run.
	Duration time.Duration

	// Err carries the underlying error for failed or cancelled runs.
	Err error
}

// Failed reports whether the run ended in a failure outcome.
// Cancelled runs are not failures.
func (r RunResult) Failed() bool {
	return r.Outcome == OutcomeCommandFailure || r.Outcome == OutcomeSpawnFailure
}
