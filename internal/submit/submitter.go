package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Submitter hands a task call to the external execution engine and returns
// an opaque identifier. Submission is fire-and-forget: nothing here waits
// for, or can observe, the task's actual execution.
type Submitter interface {
	Submit(ctx context.Context, task string, args []interface{}, kwargs map[string]interface{}) (string, error)
}

// Publisher is the slice of the queue client the submitter needs.
type Publisher interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

// CallEnvelope is the wire message placed on the queue for one task call.
type CallEnvelope struct {
	SubmissionID string                 `json:"submission_id"`
	Task         string                 `json:"task"`
	Args         []interface{}          `json:"args"`
	Kwargs       map[string]interface{} `json:"kwargs"`
	SubmittedAt  time.Time              `json:"submitted_at"`
}

// QueueSubmitter publishes call envelopes to RabbitMQ and records each
// submission through the configured Recorder.
type QueueSubmitter struct {
	publisher Publisher
	recorder  Recorder
	logger    *slog.Logger
}

// NewQueueSubmitter creates a submitter backed by the given publisher.
// A nil recorder disables submission history.
func NewQueueSubmitter(publisher Publisher, recorder Recorder, logger *slog.Logger) *QueueSubmitter {
	if recorder == nil {
		recorder = NullRecorder{}
	}
	return &QueueSubmitter{
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
	}
}

// Submit publishes one task call and returns its submission ID.
func (s *QueueSubmitter) Submit(ctx context.Context, task string, args []interface{}, kwargs map[string]interface{}) (string, error) {
	if args == nil {
		args = []interface{}{}
	}
	if kwargs == nil {
		kwargs = map[string]interface{}{}
	}

	envelope := CallEnvelope{
		SubmissionID: uuid.New().String(),
		Task:         task,
		Args:         args,
		Kwargs:       kwargs,
		SubmittedAt:  time.Now().UTC(),
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("failed to encode call envelope: %w", err)
	}

	if err := s.publisher.PublishWithRetry(ctx, body, "application/json"); err != nil {
		return "", fmt.Errorf("failed to submit task %q: %w", task, err)
	}

	s.logger.Info("Task call submitted",
		slog.String("task", task),
		slog.String("submission_id", envelope.SubmissionID),
	)

	// History is best-effort: a dead database must not fail a submission
	// that already reached the queue.
	if err := s.recorder.Record(ctx, &envelope); err != nil {
		s.logger.Warn("Failed to record submission",
			slog.String("submission_id", envelope.SubmissionID),
			slog.Any("error", err),
		)
	}

	return envelope.SubmissionID, nil
}
