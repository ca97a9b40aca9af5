package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published   [][]byte
	contentType string
	err         error
}

func (f *fakePublisher) PublishWithRetry(ctx context.Context, body []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, body)
	f.contentType = contentType
	return nil
}

type fakeRecorder struct {
	recorded []*CallEnvelope
	err      error
}

func (f *fakeRecorder) Record(ctx context.Context, envelope *CallEnvelope) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, envelope)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
}

func TestQueueSubmitter_Submit(t *testing.T) {
	publisher := &fakePublisher{}
	recorder := &fakeRecorder{}
	submitter := NewQueueSubmitter(publisher, recorder, testLogger())

	id, err := submitter.Submit(context.Background(), "math.add",
		[]interface{}{1, 2},
		map[string]interface{}{"b": 3},
	)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(id)
	assert.NoError(t, parseErr, "submission ID must be a UUID")

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "application/json", publisher.contentType)

	var envelope CallEnvelope
	require.NoError(t, json.Unmarshal(publisher.published[0], &envelope))
	assert.Equal(t, id, envelope.SubmissionID)
	assert.Equal(t, "math.add", envelope.Task)
	assert.Equal(t, []interface{}{float64(1), float64(2)}, envelope.Args)
	assert.Equal(t, map[string]interface{}{"b": float64(3)}, envelope.Kwargs)
	assert.False(t, envelope.SubmittedAt.IsZero())

	require.Len(t, recorder.recorded, 1)
	assert.Equal(t, id, recorder.recorded[0].SubmissionID)
}

func TestQueueSubmitter_SubmitNilArgs(t *testing.T) {
	publisher := &fakePublisher{}
	submitter := NewQueueSubmitter(publisher, nil, testLogger())

	_, err := submitter.Submit(context.Background(), "cache.warm", nil, nil)
	require.NoError(t, err)

	var envelope CallEnvelope
	require.NoError(t, json.Unmarshal(publisher.published[0], &envelope))
	assert.NotNil(t, envelope.Args)
	assert.NotNil(t, envelope.Kwargs)
	assert.Empty(t, envelope.Args)
	assert.Empty(t, envelope.Kwargs)
}

func TestQueueSubmitter_PublishFailure(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker unreachable")}
	recorder := &fakeRecorder{}
	submitter := NewQueueSubmitter(publisher, recorder, testLogger())

	id, err := submitter.Submit(context.Background(), "math.add", nil, nil)
	require.Error(t, err)
	assert.Empty(t, id)
	assert.Contains(t, err.Error(), "math.add")
	assert.Empty(t, recorder.recorded, "failed submissions must not be recorded")
}

func TestQueueSubmitter_RecorderFailureDoesNotFailSubmission(t *testing.T) {
	publisher := &fakePublisher{}
	recorder := &fakeRecorder{err: errors.New("database down")}
	submitter := NewQueueSubmitter(publisher, recorder, testLogger())

	id, err := submitter.Submit(context.Background(), "math.add", nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, publisher.published, 1)
}
