package command

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/buicq/taskcli/internal/cast"
	"github.com/buicq/taskcli/internal/registry"
	"github.com/buicq/taskcli/internal/submit"
)

// RegisterTaskCommands synthesizes one command per registered task and
// inserts it into the set, keyed by the slugified task name. Each command
// exposes one string flag per task parameter; on invocation the flag
// values are cast to the parameters' declared types and the call is
// submitted to the queue.
func RegisterTaskCommands(set *Set, reg *registry.Registry, submitter submit.Submitter, out io.Writer, logger *slog.Logger) {
	for _, name := range reg.Names() {
		task, err := reg.Lookup(name)
		if err != nil {
			// Names() and Lookup() read the same map; a miss here means
			// the registry mutated mid-registration.
			logger.Error("Task disappeared during command registration",
				slog.String("task", name),
			)
			continue
		}
		set.Register(newTaskCommand(task, submitter, out))
	}

	logger.Info("Registered task commands",
		slog.Int("count", reg.Len()),
	)
}

// newTaskCommand builds the command definition for a single task.
func newTaskCommand(task *registry.Task, submitter submit.Submitter, out io.Writer) *Command {
	descriptors, description := task.Signature()

	help := description
	if help == "" {
		help = "No description available."
	}

	flags := make([]FlagSpec, 0, len(descriptors))
	for _, d := range descriptors {
		flags = append(flags, FlagSpec{
			Name:     d.Name,
			Usage:    fmt.Sprintf("Type: %s | Default: %v", d.Type, d.Default),
			Required: d.Required,
		})
	}

	return &Command{
		Name:  task.Name,
		Help:  help,
		Flags: flags,
		Run: func(ctx context.Context, argv []string) error {
			return runTaskCommand(ctx, task, descriptors, flags, submitter, out, argv)
		},
	}
}

func runTaskCommand(ctx context.Context, task *registry.Task, descriptors []registry.ParameterDescriptor, flags []FlagSpec, submitter submit.Submitter, out io.Writer, argv []string) error {
	fs := flag.NewFlagSet(Slugify(task.Name), flag.ContinueOnError)
	fs.SetOutput(out)

	values := make(map[string]*string, len(flags))
	for _, f := range flags {
		values[f.Name] = fs.String(f.Name, "", f.Usage)
	}

	if err := fs.Parse(argv); err != nil {
		return err
	}

	provided := make(map[string]bool, len(flags))
	fs.Visit(func(f *flag.Flag) {
		provided[f.Name] = true
	})

	kwargs := make(map[string]interface{}, len(descriptors))
	for _, d := range descriptors {
		switch {
		case provided[d.Name]:
			raw := *values[d.Name]
			v, err := cast.Cast(raw, d.Type)
			if err != nil {
				return fmt.Errorf("argument %q: %w", d.Name, err)
			}
			kwargs[d.Name] = v

		case !d.Required:
			// Defaults are declared as typed values, no casting needed.
			kwargs[d.Name] = d.Default

		default:
			return fmt.Errorf("missing required flag --%s for task %q", d.Name, task.Name)
		}
	}

	id, err := submitter.Submit(ctx, task.Name, nil, kwargs)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Called task '%s' with id: %s\n", task.Name, id)
	return nil
}
