package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Shugur-Network/podreader/internal/config"
	apperrors "github.com/Shugur-Network/podreader/internal/errors"
	"github.com/Shugur-Network/podreader/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func okHandler(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusOK)
	return nil
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: false, RequestsPerSecond: 0.001, Burst: 1})
	for i := 0; i < 10; i++ {
		assert.True(t, rl.Allow())
	}
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 3})
	h := apperrors.NewHandler(rl.Wrap(okHandler))
	before := testutil.ToFloat64(metrics.Requests.WithLabelValues(metrics.OutcomeRateLimited))

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 200, 200, 429, 429}, codes)
	assert.Equal(t, before+2, testutil.ToFloat64(metrics.Requests.WithLabelValues(metrics.OutcomeRateLimited)))
}

func TestRateLimiter_ZeroBurstStillAllowsOne(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 0})
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())
}
