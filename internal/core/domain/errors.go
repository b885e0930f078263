package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrTaskNotFound is returned when a requested task is not found in the registry.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrInvalidTaskName is returned when a task name contains invalid characters.
	ErrInvalidTaskName = zerr.New("task name can only contain alphanumeric characters, hyphens and underscores")

	// ErrNoTaskSpecified is returned when no task name is given to run or watch.
	ErrNoTaskSpecified = zerr.New("no task specified")

	// ErrEmptyCommandLine is returned when a task declares an empty command line.
	ErrEmptyCommandLine = zerr.New("empty command line")

	// ErrEmptyEnvironmentKey is returned when a task declares an environment override with an empty key.
	ErrEmptyEnvironmentKey = zerr.New("empty environment variable name")

	// ErrConfigNotFound is returned when the hobfile cannot be found.
	ErrConfigNotFound = zerr.New("could not find hobfile")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidDuration is returned when a debounce or timeout value cannot be parsed.
	ErrInvalidDuration = zerr.New("invalid duration")

	// ErrWatchPathOutsideRoot is returned when a watch path escapes the project root.
	ErrWatchPathOutsideRoot = zerr.New("watch path is outside project root")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrTaskExecutionFailed is returned when a task execution fails.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")
)
