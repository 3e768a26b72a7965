package submit

import (
	"context"
	"log"
	"maps"
)

// Pipeline accepts validated values and produces an Outcome. Implementations
// must not retain values after returning.
type Pipeline interface {
	Submit(ctx context.Context, values map[string]string) Outcome
}

// PipelineFunc adapts a function to Pipeline.
type PipelineFunc func(ctx context.Context, values map[string]string) Outcome

func (fn PipelineFunc) Submit(ctx context.Context, values map[string]string) Outcome {
	return fn(ctx, values)
}

// Logger is the minimal logging surface used by the pipelines.
type Logger interface {
	Printf(format string, args ...any)
}

func defaultLogger() Logger {
	return log.Default()
}

func copyValues(values map[string]string) map[string]string {
	if values == nil {
		return map[string]string{}
	}
	return maps.Clone(values)
}
