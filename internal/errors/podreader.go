package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

// DatabaseConnectionError describes a failed readiness probe. On the page a
// connect failure is content, not an error.
func DatabaseConnectionError(cause error) *AppError {
	return Wrap(cause, ErrorTypeDatabase, "DB_CONNECTION_ERROR", "Database connection failed").
		WithSeverity(SeverityHigh).
		WithUserMessage("Database is temporarily unavailable. Please try again later.")
}

// QueryError wraps a failure of the messages query or of reading its rows.
// A cancelled or expired request context becomes a timeout instead.
func QueryError(cause error) *AppError {
	if stderrors.Is(cause, context.DeadlineExceeded) {
		return Wrap(cause, ErrorTypeTimeout, "QUERY_TIMEOUT", "Messages query timed out").
			WithSeverity(SeverityMedium)
	}
	return Wrap(cause, ErrorTypeDatabase, "QUERY_ERROR", "Messages query failed").
		WithSeverity(SeverityHigh)
}

// NotFoundError creates a not found error
func NotFoundError(path string) *AppError {
	return New(ErrorTypeNotFound, "NOT_FOUND", fmt.Sprintf("%s not found", path)).
		WithSeverity(SeverityLow)
}

// ValidationError creates a validation error
func ValidationError(code, message string) *AppError {
	return New(ErrorTypeValidation, code, message).
		WithSeverity(SeverityLow)
}

// RateLimitError creates a rate limit error
func RateLimitError(resource string) *AppError {
	return New(ErrorTypeRateLimit, "RATE_LIMIT_EXCEEDED", fmt.Sprintf("Rate limit exceeded for %s", resource)).
		WithSeverity(SeverityMedium)
}
