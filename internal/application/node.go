package application

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Shugur-Network/podreader/internal/config"
	"github.com/Shugur-Network/podreader/internal/handler"
	"github.com/Shugur-Network/podreader/internal/logger"
	"go.uber.org/zap"
)

// Node ties together the page server and the metrics server.
type Node struct {
	ctx    context.Context
	cancel context.CancelFunc

	config  *config.Config
	handler *handler.Handler

	pageServer    *http.Server
	metricsServer *http.Server

	mu          sync.Mutex
	pageAddr    net.Addr
	metricsAddr net.Addr
	startTime   time.Time
	errCh       chan error
}

// New creates and configures a Node using the NodeBuilder pattern.
func New(ctx context.Context, cfg *config.Config) (*Node, error) {
	return build(NewNodeBuilder(ctx, cfg))
}

func build(builder *NodeBuilder) (*Node, error) {
	builder.BuildStorage()
	builder.BuildHandler()
	builder.BuildHealth()
	builder.BuildRateLimiter()
	builder.BuildServers()

	node, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build node: %w", err)
	}
	return node, nil
}

// Start binds both listeners and serves in the background. Bind errors are
// returned directly; later serve errors arrive on Errors.
func (n *Node) Start() error {
	pageLn, err := net.Listen("tcp", n.pageServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", n.pageServer.Addr, err)
	}

	var metricsLn net.Listener
	if n.metricsServer != nil {
		metricsLn, err = net.Listen("tcp", n.metricsServer.Addr)
		if err != nil {
			_ = pageLn.Close()
			return fmt.Errorf("listen %s: %w", n.metricsServer.Addr, err)
		}
	}

	n.mu.Lock()
	n.startTime = time.Now()
	n.pageAddr = pageLn.Addr()
	if metricsLn != nil {
		n.metricsAddr = metricsLn.Addr()
	}
	n.mu.Unlock()

	go n.serve("page", n.pageServer, pageLn)
	logger.Info("Page server listening", zap.String("addr", pageLn.Addr().String()))

	if metricsLn != nil {
		go n.serve("metrics", n.metricsServer, metricsLn)
		logger.Info("Metrics server listening", zap.String("addr", metricsLn.Addr().String()))
	}
	return nil
}

func (n *Node) serve(name string, srv *http.Server, ln net.Listener) {
	if err := srv.Serve(ln); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			logger.Debug("Server closed gracefully", zap.String("server", name))
			return
		}
		logger.Error("Server error", zap.String("server", name), zap.Error(err))
		n.errCh <- fmt.Errorf("%s server: %w", name, err)
	}
}

// Errors reports servers that stopped on their own.
func (n *Node) Errors() <-chan error {
	return n.errCh
}

// Shutdown stops accepting requests and waits for in-flight pages up to the
// configured shutdown timeout.
func (n *Node) Shutdown() error {
	logger.Info("Initiating graceful shutdown...")
	shutdownTimeout := n.config.Server.ShutdownTimeout

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErrors []error
	if err := n.pageServer.Shutdown(shutdownCtx); err != nil {
		shutdownErrors = append(shutdownErrors, fmt.Errorf("page server: %w", err))
	}
	if n.metricsServer != nil {
		if err := n.metricsServer.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server: %w", err))
		}
	}

	if n.cancel != nil {
		n.cancel()
	}

	if len(shutdownErrors) > 0 {
		logger.Warn("Shutdown completed with errors",
			zap.Int("error_count", len(shutdownErrors)),
			zap.Errors("errors", shutdownErrors),
			zap.Duration("shutdown_timeout", shutdownTimeout))
		return errors.Join(shutdownErrors...)
	}
	logger.Info("Shutdown completed", zap.Duration("shutdown_timeout", shutdownTimeout))
	return nil
}
