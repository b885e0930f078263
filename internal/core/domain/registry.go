package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Registry holds the loaded task set and the project root they resolve
// against. Tasks are keyed by name; names are unique.
type Registry struct {
	root  string
	tasks map[string]*Task
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[string]*Task),
	}
}

// SetRoot sets the project root directory.
func (r *Registry) SetRoot(root string) {
	r.root = root
}

// Root returns the project root directory.
func (r *Registry) Root() string {
	return r.root
}

// AddTask adds a task to the registry. Adding a task whose name is already
// taken returns ErrTaskAlreadyExists.
func (r *Registry) AddTask(task *Task) error {
	if _, exists := r.tasks[task.Name]; exists {
		return zerr.With(ErrTaskAlreadyExists, "task", task.Name)
	}
	r.tasks[task.Name] = task
	return nil
}

// Task returns the task with the given name, or ErrTaskNotFound.
func (r *Registry) Task(name string) (*Task, error) {
	task, exists := r.tasks[name]
	if !exists {
		return nil, zerr.With(ErrTaskNotFound, "task", name)
	}
	return task, nil
}

// Names returns all task names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}
