package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-olist/pkg/interfaces"
)

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Nil or empty maps are a no-op.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}

	return logger
}

// ForContext binds ctx to logger and copies the context fields onto it, so
// providers that ignore context values still carry the run id.
func ForContext(ctx context.Context, logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	if ctx == nil {
		return logger
	}
	return WithFields(logger.WithContext(ctx), ContextFields(ctx))
}
