package limiter

import (
	"net/http"

	"github.com/Shugur-Network/podreader/internal/config"
	apperrors "github.com/Shugur-Network/podreader/internal/errors"
	"github.com/Shugur-Network/podreader/internal/logger"
	"github.com/Shugur-Network/podreader/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter caps how often the page is rendered across all clients. Every
// render opens its own MySQL connection, so the limit is global, not per
// client.
type RateLimiter struct {
	limiter *rate.Limiter
	enabled bool
}

// NewRateLimiter builds a limiter from the server settings. A disabled
// limiter allows everything.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		enabled: cfg.Enabled,
	}
}

// Allow reports whether one more render may start now.
func (rl *RateLimiter) Allow() bool {
	if !rl.enabled {
		return true
	}
	return rl.limiter.Allow()
}

// Wrap rejects requests over the limit with a rate-limit error.
func (rl *RateLimiter) Wrap(next apperrors.HandlerFunc) apperrors.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		if !rl.Allow() {
			metrics.Requests.WithLabelValues(metrics.OutcomeRateLimited).Inc()
			logger.FromContext(r.Context()).Debug("Rate limit exceeded",
				zap.String("remote_addr", r.RemoteAddr),
				zap.Float64("limit", float64(rl.limiter.Limit())),
				zap.Int("burst", rl.limiter.Burst()),
			)
			return apperrors.RateLimitError("page")
		}
		return next(w, r)
	}
}
