package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/buicq/taskcli/internal/cast"
)

// RegisterBuiltins populates the registry with the task pack compiled into
// this binary. Handlers only run on the worker side; here they exist so
// the tasks count as runnable and so a co-located worker build can share
// the same definitions.
func RegisterBuiltins(reg *Registry, logger *slog.Logger) {
	reg.Register(&Task{
		Name:        "math.add",
		Description: "Add two integers and store the sum.",
		Params: []Param{
			RequiredParam("a", cast.Int),
			OptionalParam("b", cast.Int, 3),
		},
		Handler: func(ctx context.Context, args []interface{}, kwargs map[string]interface{}) error {
			logger.Info("Executing math.add", slog.Any("kwargs", kwargs))
			return nil
		},
	})

	reg.Register(&Task{
		Name:        "email.send_welcome",
		Description: "Send the welcome email to a newly registered user.",
		Params: []Param{
			RequiredParam("user_id", cast.Int),
			OptionalParam("subject", cast.String, "Welcome aboard"),
			OptionalParam("cc", cast.ListOf(cast.KindString), []interface{}{}),
		},
		Handler: func(ctx context.Context, args []interface{}, kwargs map[string]interface{}) error {
			logger.Info("Executing email.send_welcome", slog.Any("kwargs", kwargs))
			return nil
		},
	})

	reg.Register(&Task{
		Name:        "reports.generate",
		Description: "Generate a quarterly report and upload it to object storage.",
		Params: []Param{
			RequiredParam("report_type", cast.String),
			RequiredParam("quarters", cast.ListOf(cast.KindInt)),
			OptionalParam("dry_run", cast.Bool, false),
		},
		Handler: func(ctx context.Context, args []interface{}, kwargs map[string]interface{}) error {
			logger.Info("Executing reports.generate", slog.Any("kwargs", kwargs))
			return nil
		},
	})

	reg.Register(&Task{
		Name:        "cache.warm",
		Description: "Pre-warm the cache for the given key prefixes.",
		Params: []Param{
			RequiredParam("prefixes", cast.ListOf(cast.KindString)),
			OptionalParam("ttl_seconds", cast.Float, 300.0),
		},
		Handler: func(ctx context.Context, args []interface{}, kwargs map[string]interface{}) error {
			logger.Info("Executing cache.warm", slog.Any("kwargs", kwargs))
			// Simulate the warm-up so local worker runs do something visible.
			select {
			case <-time.After(100 * time.Millisecond):
				return nil
			case <-ctx.Done():
				return fmt.Errorf("cache warm canceled: %w", ctx.Err())
			}
		},
	})
}
