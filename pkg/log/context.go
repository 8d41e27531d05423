package log

import "context"

type contextKey int

const (
	requestIDKey contextKey = iota
	fieldsKey
)

// WithRequestID stores the request ID in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the stored request ID, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithFields returns a context whose fields are the parent's plus the
// given pairs. The parent's map is never modified.
func WithFields(ctx context.Context, keysAndValues ...any) context.Context {
	parent := FieldsFromContext(ctx)
	fields := make(map[string]any, len(parent)+len(keysAndValues)/2)
	for k, v := range parent {
		fields[k] = v
	}
	mergePairs(fields, keysAndValues)
	return context.WithValue(ctx, fieldsKey, fields)
}

// FieldsFromContext returns the fields stored by WithFields, or nil.
func FieldsFromContext(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey).(map[string]any)
	return fields
}
