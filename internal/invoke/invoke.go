// Package invoke turns raw string arguments into a typed task call.
// It is shared by the CLI commands and the HTTP API so both surfaces
// apply identical casting and lookup semantics.
package invoke

import (
	"fmt"
	"strings"

	"github.com/buicq/taskcli/internal/cast"
	"github.com/buicq/taskcli/internal/registry"
)

// FormatError is returned when a key=value token is missing its "="
// separator. Surfaced before any submission happens.
type FormatError struct {
	Token string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid kwargs token %q: expected key=value", e.Token)
}

// Resolve looks a task up by its dotted name and verifies it is runnable.
func Resolve(reg *registry.Registry, name string) (*registry.Task, error) {
	task, err := reg.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("task %q: %w", name, err)
	}
	if task.Handler == nil {
		return nil, fmt.Errorf("task %q: %w", name, registry.ErrNoEntryPoint)
	}
	return task, nil
}

// BuildCall casts raw positional values and key=value keyword tokens
// against the task's signature. The signature is rebuilt here on every
// call. Positional values match parameters by declaration order; values
// past the declared parameter count pass through uncast. Keyword values
// for parameter names the task does not declare also pass through raw.
func BuildCall(task *registry.Task, rawArgs, rawKwargs []string) ([]interface{}, map[string]interface{}, error) {
	descriptors, _ := task.Signature()

	typeByName := make(map[string]cast.Type, len(descriptors))
	for _, d := range descriptors {
		typeByName[d.Name] = d.Type
	}

	args := make([]interface{}, 0, len(rawArgs))
	for i, raw := range rawArgs {
		if i >= len(descriptors) {
			args = append(args, raw)
			continue
		}
		v, err := cast.Cast(raw, descriptors[i].Type)
		if err != nil {
			return nil, nil, fmt.Errorf("argument %q: %w", descriptors[i].Name, err)
		}
		args = append(args, v)
	}

	kwargs := make(map[string]interface{}, len(rawKwargs))
	for _, token := range rawKwargs {
		key, value, found := strings.Cut(token, "=")
		if !found {
			return nil, nil, &FormatError{Token: token}
		}

		t, known := typeByName[key]
		if !known {
			kwargs[key] = value
			continue
		}

		v, err := cast.Cast(value, t)
		if err != nil {
			return nil, nil, fmt.Errorf("argument %q: %w", key, err)
		}
		kwargs[key] = v
	}

	return args, kwargs, nil
}
