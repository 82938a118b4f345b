package logging

import (
	"context"
	"maps"

	"github.com/google/uuid"
)

type contextKey string

const contextFieldsKey contextKey = "olist.logging.fields"

// FieldRunID is the context field that correlates every entry of one run.
const FieldRunID = "run_id"

// ContextWithFields returns a context carrying structured logging fields that
// console loggers merge into subsequent entries. Fields already on the
// context are kept; new values win on key collisions.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}

	merged := make(map[string]any, len(fields))
	if existing, ok := ctx.Value(contextFieldsKey).(map[string]any); ok {
		maps.Copy(merged, existing)
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextFields extracts previously annotated logging fields from the context.
// The returned map is a copy.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// WithRunID tags ctx with a fresh correlation id and returns it alongside the
// new context.
func WithRunID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return ContextWithFields(ctx, map[string]any{FieldRunID: id}), id
}

// RunID returns the correlation id stored by WithRunID, if any.
func RunID(ctx context.Context) string {
	id, _ := ContextFields(ctx)[FieldRunID].(string)
	return id
}
