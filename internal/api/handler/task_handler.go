package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/buicq/taskcli/internal/api/dto"
	"github.com/buicq/taskcli/internal/cast"
	"github.com/buicq/taskcli/internal/invoke"
	"github.com/buicq/taskcli/internal/registry"
	"github.com/buicq/taskcli/internal/submit"
	"github.com/gin-gonic/gin"
)

// ListTasks handles GET /api/v1/tasks
// Returns every registered task with its parameter descriptors
func (h *TaskHandler) ListTasks(c *gin.Context) {
	names := h.registry.Names()

	tasks := make([]dto.TaskDTO, 0, len(names))
	for _, name := range names {
		task, err := h.registry.Lookup(name)
		if err != nil {
			continue
		}

		descriptors, description := task.Signature()
		params := make([]dto.ParamDTO, 0, len(descriptors))
		for _, d := range descriptors {
			params = append(params, dto.ParamDTO{
				Name:     d.Name,
				Type:     d.Type.String(),
				Default:  d.Default,
				Required: d.Required,
			})
		}

		tasks = append(tasks, dto.TaskDTO{
			Name:        name,
			Description: description,
			Params:      params,
		})
	}

	c.JSON(http.StatusOK, dto.ListTasksResponse{Tasks: tasks})
}

// InvokeTask handles POST /api/v1/tasks/:name/invoke
// Casts the request's raw string arguments against the task's signature
// and submits the call to the queue
func (h *TaskHandler) InvokeTask(c *gin.Context) {
	name := c.Param("name")

	h.logger.Info("InvokeTask called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("task", name),
	)

	// An empty body means a call with no arguments.
	var req dto.InvokeTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	task, err := invoke.Resolve(h.registry, name)
	if err != nil {
		if errors.Is(err, registry.ErrTaskNotFound) || errors.Is(err, registry.ErrNoEntryPoint) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to resolve task",
		})
		return
	}

	rawKwargs := make([]string, 0, len(req.Kwargs))
	for k, v := range req.Kwargs {
		rawKwargs = append(rawKwargs, k+"="+v)
	}

	args, kwargs, err := invoke.BuildCall(task, req.Args, rawKwargs)
	if err != nil {
		var castErr *cast.CastError
		var formatErr *invoke.FormatError
		if errors.As(err, &castErr) || errors.As(err, &formatErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build task call",
		})
		return
	}

	id, err := h.submitter.Submit(c.Request.Context(), task.Name, args, kwargs)
	if err != nil {
		h.logger.Error("Failed to submit task", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to submit task",
		})
		return
	}

	c.JSON(http.StatusAccepted, dto.InvokeTaskResponse{
		Task:         task.Name,
		SubmissionID: id,
	})
}

// ListSubmissions handles GET /api/v1/submissions
// Lists recorded submissions with cursor pagination
func (h *TaskHandler) ListSubmissions(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Submission history is not configured",
		})
		return
	}

	var req dto.ListSubmissionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	if req.PageSize > 100 {
		req.PageSize = 100
	}

	cursor, err := DecodeSubmissionCursor(req.Cursor)
	if err != nil {
		h.logger.Error("Invalid cursor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cursor",
		})
		return
	}

	filter := submit.SubmissionFilter{
		TaskName: req.TaskName,
		PageSize: req.PageSize,
		Cursor:   cursor,
	}

	submissions, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list submissions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list submissions",
		})
		return
	}

	hasMore := len(submissions) > req.PageSize
	if hasMore {
		submissions = submissions[:req.PageSize]
	}

	response := make([]dto.SubmissionDTO, len(submissions))
	for i, s := range submissions {
		response[i] = dto.SubmissionDTO{
			SubmissionID: s.SubmissionID,
			TaskName:     s.TaskName,
			Args:         s.Args,
			Kwargs:       s.Kwargs,
			SubmittedAt:  s.SubmittedAt.Format(time.RFC3339),
		}
	}

	var nextCursor string
	if hasMore {
		last := submissions[len(submissions)-1]
		nextCursor = EncodeSubmissionCursor(&submit.SubmissionCursor{
			SubmittedAt:  last.SubmittedAt,
			SubmissionID: last.SubmissionID,
		})
	}

	c.JSON(http.StatusOK, dto.ListSubmissionsResponse{
		Submissions: response,
		NextCursor:  nextCursor,
	})
}
