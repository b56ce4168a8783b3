package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes, used as the "outcome" label.
const (
	OutcomeRendered      = "rendered"
	OutcomeConnectFailed = "connect_failed"
	OutcomeQueryFailed   = "query_failed"
	OutcomeRateLimited   = "rate_limited"
)

// Metrics for tracking page reads
var (
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podreader_requests_total",
		Help: "Page invocations by outcome",
	}, []string{"outcome"})

	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "podreader_request_duration_seconds",
		Help:    "Time to connect, query and render one page",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms .. ~16s
	})

	MessagesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "podreader_messages_rendered_total",
		Help: "Message rows written to pages",
	})

	DBConnections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podreader_db_connections_total",
		Help: "MySQL connection attempts by result",
	}, []string{"result"}) // "success", "failure"

	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podreader_errors_total",
		Help: "Errors answered by the error middleware, by type",
	}, []string{"type"})
)

// ObserveRequest records one finished invocation.
func ObserveRequest(outcome string, seconds float64, rows int) {
	Requests.WithLabelValues(outcome).Inc()
	RequestDuration.Observe(seconds)
	if rows > 0 {
		MessagesRendered.Add(float64(rows))
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
