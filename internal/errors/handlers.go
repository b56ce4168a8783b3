package errors

import (
	"net/http"
	"sync"
)

// HandlerFunc is a function type that can return an error
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler wraps HandlerFunc with automatic error handling
type Handler struct {
	errorMiddleware *ErrorMiddleware
	handlerFunc     HandlerFunc
}

// NewHandler creates a new error-aware handler
func NewHandler(handlerFunc HandlerFunc) *Handler {
	return &Handler{
		errorMiddleware: GetErrorMiddleware(),
		handlerFunc:     handlerFunc,
	}
}

// ServeHTTP implements the http.Handler interface
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.handlerFunc(w, r); err != nil {
		h.errorMiddleware.HandleError(w, r, err)
	}
}

var (
	globalErrorMiddleware *ErrorMiddleware
	initOnce              sync.Once
)

// GetErrorMiddleware returns the process-wide error middleware. It is created
// lazily so it picks up the logger configured at startup.
func GetErrorMiddleware() *ErrorMiddleware {
	initOnce.Do(func() {
		globalErrorMiddleware = NewErrorMiddleware()
	})
	return globalErrorMiddleware
}

// HandleHTTPError is a convenience function for handling HTTP errors
func HandleHTTPError(w http.ResponseWriter, r *http.Request, err error) {
	GetErrorMiddleware().HandleError(w, r, err)
}

// RecoveryMiddleware returns a middleware that recovers from panics
func RecoveryMiddleware(next http.Handler) http.Handler {
	return GetErrorMiddleware().RecoveryMiddleware(next)
}
