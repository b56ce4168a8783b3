package application

import (
	"context"
	"net"
	"time"

	"github.com/Shugur-Network/podreader/internal/config"
	"github.com/Shugur-Network/podreader/internal/handler"
)

// Config returns the node's configuration.
func (n *Node) Config() *config.Config {
	return n.config
}

// Handler returns the page handler.
func (n *Node) Handler() *handler.Handler {
	return n.handler
}

// Context is cancelled when the node shuts down.
func (n *Node) Context() context.Context {
	return n.ctx
}

// PageAddr is the bound page listener address, nil before Start.
func (n *Node) PageAddr() net.Addr {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pageAddr
}

// MetricsAddr is the bound metrics listener address, nil when metrics are
// disabled or before Start.
func (n *Node) MetricsAddr() net.Addr {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.metricsAddr
}

// GetStartTime returns when the node started serving.
func (n *Node) GetStartTime() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.startTime
}
