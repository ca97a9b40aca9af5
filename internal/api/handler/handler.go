package handler

import (
	"context"
	"log/slog"

	"github.com/buicq/taskcli/internal/registry"
	"github.com/buicq/taskcli/internal/submit"
)

// SubmissionStore is the slice of the submission store the API reads.
type SubmissionStore interface {
	List(ctx context.Context, filter submit.SubmissionFilter) ([]submit.Submission, error)
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger    *slog.Logger
	Registry  *registry.Registry
	Submitter submit.Submitter
	Store     SubmissionStore
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	logger    *slog.Logger
	registry  *registry.Registry
	submitter submit.Submitter
	store     SubmissionStore
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(deps *Dependencies) *TaskHandler {
	return &TaskHandler{
		logger:    deps.Logger,
		registry:  deps.Registry,
		submitter: deps.Submitter,
		store:     deps.Store,
	}
}
