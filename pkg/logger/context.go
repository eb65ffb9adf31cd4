package logger

import "context"

type contextKey string

const requestFieldsKey contextKey = "request_fields"

// RequestFields identifies the request a log record belongs to.
type RequestFields struct {
	RequestID string
	Path      string
	Method    string
}

// WithRequestFields returns a copy of ctx carrying f. Every record logged
// through a *Context method with the returned context includes the fields.
func WithRequestFields(ctx context.Context, f RequestFields) context.Context {
	return context.WithValue(ctx, requestFieldsKey, f)
}

// RequestFieldsFromContext returns the fields bound by WithRequestFields.
func RequestFieldsFromContext(ctx context.Context) (RequestFields, bool) {
	f, ok := ctx.Value(requestFieldsKey).(RequestFields)
	return f, ok
}

// RequestIDFromContext returns the bound request id or "".
func RequestIDFromContext(ctx context.Context) string {
	f, _ := RequestFieldsFromContext(ctx)
	return f.RequestID
}
