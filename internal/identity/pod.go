package identity

import (
	"os"

	"github.com/Shugur-Network/podreader/internal/config"
	"github.com/Shugur-Network/podreader/internal/domain"
	"github.com/Shugur-Network/podreader/internal/logger"
	"go.uber.org/zap"
)

// HostnameFunc reports the host identity of the running process.
type HostnameFunc func() (string, error)

// Resolver works out which pod and node are serving a request. The pod is
// always detected at call time; the node comes from configuration.
type Resolver struct {
	hostname HostnameFunc
}

// NewResolver returns a Resolver backed by os.Hostname.
func NewResolver() *Resolver {
	return &Resolver{hostname: os.Hostname}
}

// NewResolverWithHostname is for tests and for platforms where the OS
// hostname is not the pod name.
func NewResolverWithHostname(fn HostnameFunc) *Resolver {
	return &Resolver{hostname: fn}
}

// Resolve never fails: an undetectable hostname is reported as empty.
// POD_NAME is deliberately not consulted.
func (r *Resolver) Resolve(params config.ConnectionParams) domain.PodIdentity {
	host, err := r.hostname()
	if err != nil {
		logger.Warn("Failed to read hostname", zap.Error(err))
		host = ""
	}
	return domain.PodIdentity{
		Hostname: host,
		NodeName: params.NodeName,
	}
}
