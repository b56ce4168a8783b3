package web

import (
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Shugur-Network/podreader/internal/constants"
	apperrors "github.com/Shugur-Network/podreader/internal/errors"
	"github.com/Shugur-Network/podreader/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Middleware decorates an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so the first one listed runs first.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

/* ------------------------------------------------------------------ *
|  Security headers                                                   |
* -------------------------------------------------------------------*/

// SecurityHeaders defines the security headers to be applied to responses
type SecurityHeaders struct {
	CSP                 string
	XFrameOptions       string
	XContentTypeOptions string
	ReferrerPolicy      string
	CacheControl        string
}

// DefaultSecurityHeaders suits the message page: plain markup, no scripts,
// no styles, never cached since it reports the serving pod.
func DefaultSecurityHeaders() *SecurityHeaders {
	return &SecurityHeaders{
		CSP:                 "default-src 'none'; frame-ancestors 'none'; base-uri 'none'",
		XFrameOptions:       "DENY",
		XContentTypeOptions: "nosniff",
		ReferrerPolicy:      "no-referrer",
		CacheControl:        "no-store",
	}
}

// SecurityMiddleware wraps an http.Handler with security headers
func SecurityMiddleware(headers *SecurityHeaders) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers.Apply(w)
			next.ServeHTTP(w, r)
		})
	}
}

// Apply sets the non-empty headers on w.
func (sh *SecurityHeaders) Apply(w http.ResponseWriter) {
	set := func(name, value string) {
		if value != "" {
			w.Header().Set(name, value)
		}
	}
	set("Content-Security-Policy", sh.CSP)
	set("X-Frame-Options", sh.XFrameOptions)
	set("X-Content-Type-Options", sh.XContentTypeOptions)
	set("Referrer-Policy", sh.ReferrerPolicy)
	set("Cache-Control", sh.CacheControl)
}

/* ------------------------------------------------------------------ *
|  Input validation                                                   |
* -------------------------------------------------------------------*/

// InputValidation restricts which requests reach the handlers.
type InputValidation struct {
	MaxPathLength   int
	MaxQueryLength  int
	MaxHeaderLength int
	// AllowedQueryParams lists, per path, the parameters that path accepts.
	// Paths without an entry ignore their query string.
	AllowedQueryParams map[string]map[string]bool
	PathPatterns       []*regexp.Regexp
}

// DefaultInputValidation accepts the page at / and /index.php plus the
// health endpoint. The page ignores its query string.
func DefaultInputValidation() *InputValidation {
	return &InputValidation{
		MaxPathLength:   256,
		MaxQueryLength:  1024,
		MaxHeaderLength: 8192,
		AllowedQueryParams: map[string]map[string]bool{
			"/health": {"ready": true},
		},
		PathPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^/$`),
			regexp.MustCompile(`^/index\.php$`),
			regexp.MustCompile(`^/health$`),
		},
	}
}

// ValidateRequest returns a not-found error for unknown paths and a
// validation error for anything else it rejects.
func (iv *InputValidation) ValidateRequest(r *http.Request) error {
	if len(r.URL.Path) > iv.MaxPathLength {
		return apperrors.ValidationError("PATH_TOO_LONG", "Request path too long")
	}
	if len(r.URL.RawQuery) > iv.MaxQueryLength {
		return apperrors.ValidationError("QUERY_TOO_LONG", "Query string too long")
	}

	pathValid := false
	for _, pattern := range iv.PathPatterns {
		if pattern.MatchString(r.URL.Path) {
			pathValid = true
			break
		}
	}
	if !pathValid {
		return apperrors.NotFoundError(r.URL.Path)
	}

	if allowed, ok := iv.AllowedQueryParams[r.URL.Path]; ok {
		for param := range r.URL.Query() {
			if !allowed[param] {
				return apperrors.ValidationError("INVALID_QUERY_PARAM", "Invalid query parameter: "+param)
			}
		}
	}

	for name, values := range r.Header {
		for _, value := range values {
			if len(value) > iv.MaxHeaderLength {
				return apperrors.ValidationError("HEADER_TOO_LONG", "Header value too long: "+name)
			}
		}
	}

	for _, name := range []string{"Host", "X-Forwarded-For", "User-Agent", "Referer"} {
		if err := validateHeaderValue(name, r.Header.Get(name)); err != nil {
			return err
		}
	}
	return nil
}

// validateHeaderValue checks header values for injection patterns
func validateHeaderValue(name, value string) error {
	if value == "" {
		return nil
	}
	if !utf8.ValidString(value) {
		return apperrors.ValidationError("INVALID_ENCODING", "Invalid character encoding in header: "+name)
	}
	if strings.ContainsAny(value, "\x00\r\n") {
		return apperrors.ValidationError("HEADER_INJECTION", "Potential header injection detected: "+name)
	}
	return nil
}

// ValidationMiddleware rejects requests that fail validation through the
// error middleware.
func ValidationMiddleware(validation *InputValidation) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := validation.ValidateRequest(r); err != nil {
				apperrors.HandleHTTPError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

/* ------------------------------------------------------------------ *
|  Request ids & access log                                           |
* -------------------------------------------------------------------*/

// RequestIDMiddleware tags every request with an id, reusing a well-formed
// incoming X-Request-ID.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(constants.RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(constants.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.status == 0 {
		sr.status = code
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

// AccessLogMiddleware logs one line per request at debug level.
func AccessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		logger.FromContext(r.Context()).Debug("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", r.RemoteAddr),
			zap.String("user_agent", r.Header.Get("User-Agent")),
		)
	})
}
