package logger

import (
	"context"
	"log/slog"
	"os"
)

type ContextKey string

const (
	// Business context keys for request-scoped observability.
	RequestIDKey ContextKey = "notes.request.id"
	TaskKey      ContextKey = "notes.task"
	ClassKey     ContextKey = "notes.class_level"
)

// ContextLogger provides context-aware logging with per-request business
// context fields.
type ContextLogger struct {
	logger      *slog.Logger
	serviceName string
}

// NewContextLogger creates a new context-aware logger.
func NewContextLogger(serviceName string) *ContextLogger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	}
	handler := slog.NewJSONHandler(os.Stdout, opts)

	return &ContextLogger{
		logger:      slog.New(handler),
		serviceName: serviceName,
	}
}

// WithContext returns a logger with context values extracted and added as fields.
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	logger := cl.logger.With("service", cl.serviceName)

	var fields []any

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		fields = append(fields, string(RequestIDKey), requestID)
	}
	if task := ctx.Value(TaskKey); task != nil {
		fields = append(fields, string(TaskKey), task)
	}
	if class := ctx.Value(ClassKey); class != nil {
		fields = append(fields, string(ClassKey), class)
	}

	if len(fields) > 0 {
		logger = logger.With(fields...)
	}

	return logger
}

// WithRequestID adds the request ID to context for observability.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithTask adds the task name (ask, summarize, timetable, ...) to context.
func WithTask(ctx context.Context, task string) context.Context {
	return context.WithValue(ctx, TaskKey, task)
}

// WithClassLevel adds the class scope to context for observability.
func WithClassLevel(ctx context.Context, classLevel string) context.Context {
	return context.WithValue(ctx, ClassKey, classLevel)
}
