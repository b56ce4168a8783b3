package identity

import (
	"errors"
	"os"
	"testing"

	"github.com/Shugur-Network/podreader/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_UsesOSHostname(t *testing.T) {
	want, err := os.Hostname()
	require.NoError(t, err)

	id := NewResolver().Resolve(config.ConnectionParams{NodeName: "node-1"})
	assert.Equal(t, want, id.Hostname)
	assert.Equal(t, "node-1", id.NodeName)
}

func TestResolve_IgnoresPodName(t *testing.T) {
	r := NewResolverWithHostname(func() (string, error) { return "podreader-6b7c9", nil })

	id := r.Resolve(config.ConnectionParams{PodName: "something-else", NodeName: "n"})
	assert.Equal(t, "podreader-6b7c9", id.Hostname)
}

func TestResolve_HostnameErrorIsEmpty(t *testing.T) {
	r := NewResolverWithHostname(func() (string, error) { return "partial", errors.New("uname failed") })

	id := r.Resolve(config.ConnectionParams{NodeName: "n"})
	assert.Empty(t, id.Hostname)
	assert.Equal(t, "n", id.NodeName)
}
