package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides enhanced structured logging with context
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new enhanced logger
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(method, path, ip string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// ComparisonLogger logs comparison operation details
func (l *Logger) ComparisonLogger(vehicleCount, fieldCount int, source string, duration time.Duration, cacheHit bool) {
	l.Info("Comparison Completed",
		"vehicle_count", vehicleCount,
		"field_count", fieldCount,
		"source", source,
		"duration_ms", duration.Milliseconds(),
		"cache_hit", cacheHit,
	)
}

// ExternalAPILogger logs external API call details
func (l *Logger) ExternalAPILogger(apiName, operation string, duration time.Duration, success bool) {
	l.Info("External API Call",
		"api", apiName,
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// APIErrorLogger logs API errors with request context
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}
