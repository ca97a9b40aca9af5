package command

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/buicq/taskcli/internal/invoke"
	"github.com/buicq/taskcli/internal/registry"
	"github.com/buicq/taskcli/internal/submit"
)

// NewTasksCommand builds the generic invoker. With no task name it lists
// the registry; with a name it casts --args/--kwargs against the task's
// signature and submits the call.
func NewTasksCommand(reg *registry.Registry, submitter submit.Submitter, out io.Writer) *Command {
	return &Command{
		Name: "tasks",
		Help: "List registered tasks, or call one by name with typed arguments.",
		Flags: []FlagSpec{
			{Name: "args", Usage: "Positional argument for the task; repeat for multiple values"},
			{Name: "kwargs", Usage: "Keyword argument in key=value form; repeat for multiple values"},
		},
		Run: func(ctx context.Context, argv []string) error {
			return runTasksCommand(ctx, reg, submitter, out, argv)
		},
	}
}

func runTasksCommand(ctx context.Context, reg *registry.Registry, submitter submit.Submitter, out io.Writer, argv []string) error {
	// The task name is the leading positional argument, before any flags.
	var taskName string
	if len(argv) > 0 && !strings.HasPrefix(argv[0], "-") {
		taskName = argv[0]
		argv = argv[1:]
	}

	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(out)

	var rawArgs, rawKwargs stringList
	fs.Var(&rawArgs, "args", "Positional argument for the task; repeat for multiple values")
	fs.Var(&rawKwargs, "kwargs", "Keyword argument in key=value form; repeat for multiple values")

	if err := fs.Parse(argv); err != nil {
		return err
	}

	if taskName == "" {
		listTasks(reg, out)
		return nil
	}

	task, err := invoke.Resolve(reg, taskName)
	if err != nil {
		return err
	}

	args, kwargs, err := invoke.BuildCall(task, rawArgs, rawKwargs)
	if err != nil {
		return err
	}

	id, err := submitter.Submit(ctx, task.Name, args, kwargs)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Task '%s' submitted. Submission ID: %s\n", task.Name, id)
	return nil
}

func listTasks(reg *registry.Registry, out io.Writer) {
	fmt.Fprintln(out, "Task registry:")
	for _, name := range reg.Names() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintln(out, "\nUsage: taskcli tasks <task_name> [--args X --args Y] [--kwargs foo=bar]")
}
