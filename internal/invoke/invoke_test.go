package invoke

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/buicq/taskcli/internal/cast"
	"github.com/buicq/taskcli/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))
	reg.Register(&registry.Task{
		Name: "math.add",
		Params: []registry.Param{
			registry.RequiredParam("a", cast.Int),
			registry.OptionalParam("b", cast.Int, 3),
		},
		Handler: func(ctx context.Context, args []interface{}, kwargs map[string]interface{}) error {
			return nil
		},
	})
	reg.Register(&registry.Task{
		Name:   "no.handler",
		Params: nil,
	})
	return reg
}

func TestResolve(t *testing.T) {
	reg := newTestRegistry(t)

	task, err := Resolve(reg, "math.add")
	require.NoError(t, err)
	assert.Equal(t, "math.add", task.Name)

	_, err = Resolve(reg, "missing.task")
	assert.ErrorIs(t, err, registry.ErrTaskNotFound)

	_, err = Resolve(reg, "no.handler")
	assert.ErrorIs(t, err, registry.ErrNoEntryPoint)
}

func TestBuildCall_Positional(t *testing.T) {
	reg := newTestRegistry(t)
	task, err := Resolve(reg, "math.add")
	require.NoError(t, err)

	args, kwargs, err := BuildCall(task, []string{"10", "20", "extra"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{10, 20, "extra"}, args)
	assert.Empty(t, kwargs)
}

func TestBuildCall_Kwargs(t *testing.T) {
	reg := newTestRegistry(t)
	task, err := Resolve(reg, "math.add")
	require.NoError(t, err)

	args, kwargs, err := BuildCall(task, nil, []string{"a=1", "b=2", "mystery=raw"})
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": 2, "mystery": "raw"}, kwargs)
}

func TestBuildCall_MalformedKwarg(t *testing.T) {
	reg := newTestRegistry(t)
	task, err := Resolve(reg, "math.add")
	require.NoError(t, err)

	_, _, err = BuildCall(task, nil, []string{"novalue"})
	require.Error(t, err)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "novalue", formatErr.Token)
}

func TestBuildCall_CastFailure(t *testing.T) {
	reg := newTestRegistry(t)
	task, err := Resolve(reg, "math.add")
	require.NoError(t, err)

	_, _, err = BuildCall(task, []string{"notanint"}, nil)
	require.Error(t, err)

	var castErr *cast.CastError
	require.True(t, errors.As(err, &castErr))
	assert.Contains(t, err.Error(), `"a"`)

	_, _, err = BuildCall(task, nil, []string{"b=maybe"})
	require.Error(t, err)
	require.True(t, errors.As(err, &castErr))
	assert.Contains(t, err.Error(), `"b"`)
}
