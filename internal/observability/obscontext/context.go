package obscontext

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	feederKey    contextKey = "feeder_code"
)

// WithRequestID stores the request correlation identifier.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the correlation identifier, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithFeederCode stores the feeder a request or job operates on.
func WithFeederCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, feederKey, code)
}

// FeederCodeFromContext returns the feeder code, if any.
func FeederCodeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(feederKey).(string); ok {
		return v
	}
	return ""
}
