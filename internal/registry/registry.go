package registry

import (
	"context"
	"log/slog"
	"sort"

	"github.com/buicq/taskcli/internal/cast"
)

// HandlerFunc is the entry point a worker process would call to actually
// execute a task. The submission side never invokes it; its presence is
// what marks a task as runnable.
type HandlerFunc func(ctx context.Context, args []interface{}, kwargs map[string]interface{}) error

// Task is a unit of work identified by a fully-qualified dotted name,
// invocable asynchronously through the queue.
type Task struct {
	Name        string
	Description string
	Params      []Param
	Handler     HandlerFunc
}

// Param describes one declared parameter of a task.
type Param struct {
	Name       string
	Type       cast.Type
	defaultVal interface{}
	hasDefault bool
}

// RequiredParam declares a parameter with no default value.
func RequiredParam(name string, t cast.Type) Param {
	return Param{Name: name, Type: t}
}

// OptionalParam declares a parameter with a default value. Any default
// counts, including falsy ones like 0, "" or false.
func OptionalParam(name string, t cast.Type, def interface{}) Param {
	return Param{Name: name, Type: t, defaultVal: def, hasDefault: true}
}

// Required reports whether the parameter must be supplied by the caller.
// It is true iff no default value was declared.
func (p Param) Required() bool {
	return !p.hasDefault
}

// Default returns the declared default value and whether one exists.
func (p Param) Default() (interface{}, bool) {
	return p.defaultVal, p.hasDefault
}

// Registry maps dotted task names to task definitions. It is built once
// at process start and passed by reference to everything that reads it;
// there is no ambient global registry.
type Registry struct {
	logger *slog.Logger
	tasks  map[string]*Task
}

// New creates an empty task registry.
func New(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger,
		tasks:  make(map[string]*Task),
	}
}

// Register adds a task to the registry. Registering a name twice
// overwrites the previous definition; the overwrite is logged so a
// mis-packaged task module does not vanish silently.
func (r *Registry) Register(task *Task) {
	if _, exists := r.tasks[task.Name]; exists {
		r.logger.Warn("Task registered twice, overwriting previous definition",
			slog.String("task", task.Name),
		)
	}
	r.tasks[task.Name] = task
}

// Lookup returns the task registered under the given dotted name.
func (r *Registry) Lookup(name string) (*Task, error) {
	task, ok := r.tasks[name]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// Names returns all registered task names in sorted lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}
