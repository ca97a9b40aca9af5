package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/buicq/taskcli/internal/api/dto"
	"github.com/buicq/taskcli/internal/cast"
	"github.com/buicq/taskcli/internal/registry"
	"github.com/buicq/taskcli/internal/submit"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	task   string
	args   []interface{}
	kwargs map[string]interface{}
}

type fakeSubmitter struct {
	calls []recordedCall
}

func (f *fakeSubmitter) Submit(ctx context.Context, task string, args []interface{}, kwargs map[string]interface{}) (string, error) {
	f.calls = append(f.calls, recordedCall{task: task, args: args, kwargs: kwargs})
	return "sub-0001", nil
}

type fakeStore struct {
	submissions []submit.Submission
}

func (f *fakeStore) List(ctx context.Context, filter submit.SubmissionFilter) ([]submit.Submission, error) {
	return f.submissions, nil
}

func noopHandler(ctx context.Context, args []interface{}, kwargs map[string]interface{}) error {
	return nil
}

func newTestRouter(t *testing.T, store SubmissionStore) (*gin.Engine, *fakeSubmitter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	reg := registry.New(logger)
	reg.Register(&registry.Task{
		Name:        "math.add",
		Description: "Add two integers.",
		Params: []registry.Param{
			registry.RequiredParam("a", cast.Int),
			registry.OptionalParam("b", cast.Int, 3),
		},
		Handler: noopHandler,
	})

	submitter := &fakeSubmitter{}
	h := NewTaskHandler(&Dependencies{
		Logger:    logger,
		Registry:  reg,
		Submitter: submitter,
		Store:     store,
	})

	r := gin.New()
	r.GET("/api/v1/tasks", h.ListTasks)
	r.POST("/api/v1/tasks/:name/invoke", h.InvokeTask)
	r.GET("/api/v1/submissions", h.ListSubmissions)
	return r, submitter
}

func TestTaskHandler_ListTasks(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListTasksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tasks, 1)

	task := resp.Tasks[0]
	assert.Equal(t, "math.add", task.Name)
	require.Len(t, task.Params, 2)
	assert.Equal(t, "a", task.Params[0].Name)
	assert.Equal(t, "int", task.Params[0].Type)
	assert.True(t, task.Params[0].Required)
	assert.False(t, task.Params[1].Required)
}

func TestTaskHandler_InvokeTask(t *testing.T) {
	r, submitter := newTestRouter(t, nil)

	body := `{"args": ["10"], "kwargs": {"b": "20"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/math.add/invoke", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp dto.InvokeTaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "math.add", resp.Task)
	assert.Equal(t, "sub-0001", resp.SubmissionID)

	require.Len(t, submitter.calls, 1)
	call := submitter.calls[0]
	assert.Equal(t, []interface{}{10}, call.args)
	assert.Equal(t, map[string]interface{}{"b": 20}, call.kwargs)
}

func TestTaskHandler_InvokeTaskEmptyBody(t *testing.T) {
	r, submitter := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/math.add/invoke", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, submitter.calls, 1)
}

func TestTaskHandler_InvokeUnknownTask(t *testing.T) {
	r, submitter := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/no.such.task/invoke", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, submitter.calls)
}

func TestTaskHandler_InvokeCastFailure(t *testing.T) {
	r, submitter := newTestRouter(t, nil)

	body := `{"args": ["notanint"]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/math.add/invoke", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "notanint")
	assert.Empty(t, submitter.calls)
}

func TestTaskHandler_ListSubmissionsWithoutStore(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTaskHandler_ListSubmissions(t *testing.T) {
	store := &fakeStore{
		submissions: []submit.Submission{
			{
				SubmissionID: "sub-1",
				TaskName:     "math.add",
				Args:         "[10]",
				Kwargs:       "{}",
				SubmittedAt:  time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
			},
		},
	}
	r, _ := newTestRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListSubmissionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Submissions, 1)
	assert.Equal(t, "sub-1", resp.Submissions[0].SubmissionID)
	assert.Empty(t, resp.NextCursor)
}

func TestSubmissionCursorRoundTrip(t *testing.T) {
	cursor := &submit.SubmissionCursor{
		SubmittedAt:  time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
		SubmissionID: "sub-1",
	}

	encoded := EncodeSubmissionCursor(cursor)
	decoded, err := DecodeSubmissionCursor(encoded)
	require.NoError(t, err)
	assert.True(t, cursor.SubmittedAt.Equal(decoded.SubmittedAt))
	assert.Equal(t, cursor.SubmissionID, decoded.SubmissionID)

	empty, err := DecodeSubmissionCursor("")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = DecodeSubmissionCursor("not-base64!!!")
	assert.Error(t, err)
}
