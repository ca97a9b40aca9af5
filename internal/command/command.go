package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
)

var nonWordPattern = regexp.MustCompile(`\W+`)

// Slugify turns a dotted task name into a valid command name by replacing
// every run of non-word characters with an underscore, e.g.
// "my_app.tasks.add" -> "my_app_tasks_add".
func Slugify(name string) string {
	return nonWordPattern.ReplaceAllString(name, "_")
}

// FlagSpec describes one flag of a command, for usage rendering and for
// the command's own flag parsing.
type FlagSpec struct {
	Name     string
	Usage    string
	Required bool
}

// Command is one invocable subcommand. Run receives the argv slice that
// follows the command name on the command line.
type Command struct {
	Name  string
	Help  string
	Flags []FlagSpec
	Run   func(ctx context.Context, argv []string) error
}

// Set is the dispatch table mapping slugified command names to command
// definitions. It is populated once at startup and read afterwards;
// insertion on a colliding slug overwrites the previous entry with a
// warning.
type Set struct {
	logger *slog.Logger
	cmds   map[string]*Command
}

// NewSet creates an empty command set.
func NewSet(logger *slog.Logger) *Set {
	return &Set{
		logger: logger,
		cmds:   make(map[string]*Command),
	}
}

// Register inserts a command under the slugified form of its name.
func (s *Set) Register(cmd *Command) {
	slug := Slugify(cmd.Name)
	if _, exists := s.cmds[slug]; exists {
		s.logger.Warn("Command slug collision, overwriting previous command",
			slog.String("command", cmd.Name),
			slog.String("slug", slug),
		)
	}
	s.cmds[slug] = cmd
}

// Lookup returns the command registered under the given name.
func (s *Set) Lookup(name string) (*Command, bool) {
	cmd, ok := s.cmds[name]
	return cmd, ok
}

// Names returns all registered command slugs in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.cmds))
	for name := range s.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run dispatches one command invocation. Errors terminate only this
// invocation; the caller decides process exit behavior.
func (s *Set) Run(ctx context.Context, name string, argv []string) error {
	cmd, ok := s.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown command %q (run without arguments to list commands)", name)
	}
	return cmd.Run(ctx, argv)
}

// PrintUsage writes the command overview.
func (s *Set) PrintUsage(out io.Writer) {
	fmt.Fprintln(out, "Available commands:")
	for _, name := range s.Names() {
		cmd, _ := s.Lookup(name)
		if cmd.Help != "" {
			fmt.Fprintf(out, "  %-28s %s\n", name, cmd.Help)
		} else {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}
}

// stringList collects repeated flag values in order.
type stringList []string

func (l *stringList) String() string {
	return fmt.Sprintf("%v", []string(*l))
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}
