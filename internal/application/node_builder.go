package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Shugur-Network/podreader/internal/config"
	apperrors "github.com/Shugur-Network/podreader/internal/errors"
	"github.com/Shugur-Network/podreader/internal/handler"
	"github.com/Shugur-Network/podreader/internal/health"
	"github.com/Shugur-Network/podreader/internal/identity"
	"github.com/Shugur-Network/podreader/internal/limiter"
	"github.com/Shugur-Network/podreader/internal/logger"
	"github.com/Shugur-Network/podreader/internal/metrics"
	"github.com/Shugur-Network/podreader/internal/storage"
	"github.com/Shugur-Network/podreader/internal/web"
	"go.uber.org/zap"
)

// NodeBuilder is used to incrementally construct a Node instance.
type NodeBuilder struct {
	ctx    context.Context
	cancel context.CancelFunc
	config *config.Config

	env         *config.Env
	dbPort      int // replaces 3306 when non-zero; tests only
	dialer      *storage.MySQLDialer
	identity    *identity.Resolver
	handler     *handler.Handler
	health      *health.HealthChecker
	rateLimiter *limiter.RateLimiter

	pageServer    *http.Server
	metricsServer *http.Server
}

// NewNodeBuilder creates a new NodeBuilder with its own cancelable context.
func NewNodeBuilder(ctx context.Context, cfg *config.Config) *NodeBuilder {
	c, cancel := context.WithCancel(ctx)
	return &NodeBuilder{
		ctx:    c,
		cancel: cancel,
		config: cfg,
	}
}

// BuildStorage prepares the per-request MySQL dialer. No connection is
// opened here; the page connects on every request.
func (b *NodeBuilder) BuildStorage() {
	b.env = config.NewEnv()
	b.dialer = storage.NewMySQLDialer(b.config.Database)
	if b.dbPort != 0 {
		b.dialer.Port = b.dbPort
	}

	logger.Debug("MySQL dialer ready",
		zap.Int("port", b.dialer.Port),
		zap.Duration("dial_timeout", b.dialer.DialTimeout))
}

// BuildHandler wires the page handler. Requires BuildStorage.
func (b *NodeBuilder) BuildHandler() {
	b.identity = identity.NewResolver()
	b.handler = handler.New(b.env, b.dialer, b.identity)
}

// BuildHealth wires the liveness and readiness checks. Requires BuildStorage.
func (b *NodeBuilder) BuildHealth() {
	b.health = health.NewHealthChecker(b.dialer, b.env, logger.New("health"), config.Version)
}

// BuildRateLimiter creates the page rate limiter from the server settings.
func (b *NodeBuilder) BuildRateLimiter() {
	b.rateLimiter = limiter.NewRateLimiter(b.config.Server.RateLimit)
	if b.config.Server.RateLimit.Enabled {
		logger.Info("Page rate limiting enabled",
			zap.Float64("requests_per_second", b.config.Server.RateLimit.RequestsPerSecond),
			zap.Int("burst", b.config.Server.RateLimit.Burst))
	}
}

// BuildServers creates the page listener and, when enabled, the metrics
// listener.
func (b *NodeBuilder) BuildServers() {
	page := apperrors.NewHandler(b.rateLimiter.Wrap(b.handler.ServePage))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", b.health.HandleHealth)
	mux.Handle("/", page)

	srv := b.config.Server
	b.pageServer = &http.Server{
		Addr: srv.Addr,
		Handler: web.Chain(mux,
			apperrors.RecoveryMiddleware,
			web.RequestIDMiddleware,
			web.AccessLogMiddleware,
			web.SecurityMiddleware(web.DefaultSecurityHeaders()),
			web.ValidationMiddleware(web.DefaultInputValidation()),
		),
		ReadTimeout:  srv.ReadTimeout,
		WriteTimeout: srv.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	if b.config.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", metrics.Handler())
		b.metricsServer = &http.Server{
			Addr:         b.config.Metrics.Addr,
			Handler:      metricsMux,
			ReadTimeout:  srv.ReadTimeout,
			WriteTimeout: srv.WriteTimeout,
		}
	}
}

// Build assembles the Node from the built components.
func (b *NodeBuilder) Build() (*Node, error) {
	if b.handler == nil || b.health == nil || b.pageServer == nil {
		b.cancel()
		return nil, fmt.Errorf("node builder: handler, health and servers must be built first")
	}
	return &Node{
		ctx:           b.ctx,
		cancel:        b.cancel,
		config:        b.config,
		handler:       b.handler,
		pageServer:    b.pageServer,
		metricsServer: b.metricsServer,
		errCh:         make(chan error, 2),
	}, nil
}
