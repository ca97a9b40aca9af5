package registry

import "errors"

var (
	// ErrTaskNotFound is returned when a task name is absent from the registry
	ErrTaskNotFound = errors.New("task not found in registry")

	// ErrNoEntryPoint is returned when a registered task has no handler to run
	ErrNoEntryPoint = errors.New("task has no handler")
)
