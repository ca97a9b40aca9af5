package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/buicq/taskcli/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

// Submission is one recorded task call, as stored in the database.
type Submission struct {
	SubmissionID string    `db:"submission_id" json:"submission_id"`
	TaskName     string    `db:"task_name" json:"task_name"`
	Args         string    `db:"args" json:"args"`
	Kwargs       string    `db:"kwargs" json:"kwargs"`
	SubmittedAt  time.Time `db:"submitted_at" json:"submitted_at"`
}

// Recorder persists submissions for the history command and API.
type Recorder interface {
	Record(ctx context.Context, envelope *CallEnvelope) error
}

// NullRecorder drops every submission record. Used when no database is
// configured.
type NullRecorder struct{}

func (NullRecorder) Record(ctx context.Context, envelope *CallEnvelope) error {
	return nil
}

// Store persists and lists submissions in PostgreSQL.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a submission store on top of the shared client.
func NewStore(pg *postgresql.Client) *Store {
	return &Store{
		db: pg.GetDB(),
	}
}

// Record inserts one submission row.
func (s *Store) Record(ctx context.Context, envelope *CallEnvelope) error {
	argsJSON, err := json.Marshal(envelope.Args)
	if err != nil {
		return fmt.Errorf("failed to encode args: %w", err)
	}

	kwargsJSON, err := json.Marshal(envelope.Kwargs)
	if err != nil {
		return fmt.Errorf("failed to encode kwargs: %w", err)
	}

	query := `
		INSERT INTO submissions (
			submission_id, task_name, args, kwargs, submitted_at
		) VALUES (
			$1, $2, $3, $4, $5
		)
	`

	_, err = s.db.ExecContext(
		ctx,
		query,
		envelope.SubmissionID,
		envelope.Task,
		string(argsJSON),
		string(kwargsJSON),
		envelope.SubmittedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}

	return nil
}

// SubmissionCursor marks a position in the submission history for
// keyset pagination.
type SubmissionCursor struct {
	SubmittedAt  time.Time
	SubmissionID string
}

// SubmissionFilter narrows and pages the history listing.
type SubmissionFilter struct {
	TaskName string
	PageSize int
	Cursor   *SubmissionCursor
}

// List returns recent submissions, newest first. It fetches one row past
// PageSize so the caller can tell whether more results exist.
func (s *Store) List(ctx context.Context, filter SubmissionFilter) ([]Submission, error) {
	query := `
		SELECT
			submission_id, task_name, args, kwargs, submitted_at
		FROM submissions
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.TaskName != "" {
		query += fmt.Sprintf(" AND task_name = $%d", argIdx)
		args = append(args, filter.TaskName)
		argIdx++
	}

	if filter.Cursor != nil {
		query += fmt.Sprintf(" AND (submitted_at, submission_id) < ($%d, $%d)", argIdx, argIdx+1)
		args = append(args, filter.Cursor.SubmittedAt, filter.Cursor.SubmissionID)
		argIdx += 2
	}

	query += " ORDER BY submitted_at DESC, submission_id DESC"
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, filter.PageSize+1)

	var submissions []Submission
	if err := s.db.SelectContext(ctx, &submissions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return submissions, nil
}
