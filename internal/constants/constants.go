package constants

import "time"

// Database constants
const (
	MySQLPort     = 3306                        // Port the page always dials
	MessagesQuery = "SELECT name FROM messages" // The only statement the service issues
)

// Page rendering constants
const (
	HTMLLineBreak = "<br>"
	TextLineBreak = "\n"

	MessageTrailingBreaks  = 3 // Breaks after every "Message:" line
	IdentityTrailingBreaks = 2 // Breaks after the pod and node lines
)

// HTTP constants
const (
	PageContentType    = "text/html; charset=UTF-8"
	RequestIDHeader    = "X-Request-ID"
	HealthCheckTimeout = 5 * time.Second
)

// Health thresholds
const (
	MemoryWarningMB   = 256
	MemoryCriticalMB  = 512
	GoroutineWarning  = 1000
	GoroutineCritical = 5000
)
