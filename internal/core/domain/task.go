package domain

import "time"

// Task is a named, ordered sequence of command lines sharing one
// environment overlay. Tasks are immutable once loaded and owned
// exclusively by the Registry.
type Task struct {
	Name        string
	Commands    []CommandLine
	Environment map[string]string
	Timeout     time.Duration
	Watch       WatchConfig
}

// CommandLine is a single shell-invocable line plus the directory it runs
// in. An empty WorkingDir means the registry root.
type CommandLine struct {
	Line       string
	WorkingDir string
}

// WatchConfig holds the watch settings a task declares for the watch loop.
// A zero Debounce means the operator default applies; empty Paths means the
// registry root is watched recursively.
type WatchConfig struct {
	Paths    []string
	Debounce time.Duration
}
