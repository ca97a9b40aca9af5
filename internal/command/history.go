package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/buicq/taskcli/internal/submit"
)

// SubmissionLister is the slice of the submission store the history
// command needs.
type SubmissionLister interface {
	List(ctx context.Context, filter submit.SubmissionFilter) ([]submit.Submission, error)
}

// NewHistoryCommand builds the command that prints recent submissions
// from the database. A nil lister means no database is configured.
func NewHistoryCommand(lister SubmissionLister, out io.Writer) *Command {
	return &Command{
		Name: "history",
		Help: "Show recently submitted task calls.",
		Flags: []FlagSpec{
			{Name: "task", Usage: "Only show submissions of this task"},
			{Name: "limit", Usage: "Maximum number of submissions to show"},
		},
		Run: func(ctx context.Context, argv []string) error {
			return runHistoryCommand(ctx, lister, out, argv)
		},
	}
}

func runHistoryCommand(ctx context.Context, lister SubmissionLister, out io.Writer, argv []string) error {
	if lister == nil {
		return errors.New("submission history requires a database connection (set database.host in the config)")
	}

	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(out)
	taskName := fs.String("task", "", "Only show submissions of this task")
	limit := fs.Int("limit", 20, "Maximum number of submissions to show")

	if err := fs.Parse(argv); err != nil {
		return err
	}

	if *limit <= 0 {
		*limit = 20
	}

	submissions, err := lister.List(ctx, submit.SubmissionFilter{
		TaskName: *taskName,
		PageSize: *limit,
	})
	if err != nil {
		return err
	}

	if len(submissions) == 0 {
		fmt.Fprintln(out, "No submissions recorded.")
		return nil
	}

	hasMore := len(submissions) > *limit
	if hasMore {
		submissions = submissions[:*limit]
	}

	for _, s := range submissions {
		fmt.Fprintf(out, "%s  %-30s  %s\n",
			s.SubmittedAt.Format(time.RFC3339),
			s.TaskName,
			s.SubmissionID,
		)
	}

	if hasMore {
		fmt.Fprintln(out, "...more submissions exist, raise --limit to see them")
	}

	return nil
}
