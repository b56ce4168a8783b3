package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/Shugur-Network/podreader/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewMySQLDialer_FixedPort(t *testing.T) {
	d := NewMySQLDialer(config.DatabaseConfig{DialTimeout: time.Second})
	assert.Equal(t, 3306, d.Port)
	assert.Equal(t, time.Second, d.DialTimeout)
}

// unreachableDialer dials a loopback port nothing listens on.
func unreachableDialer(t *testing.T, timeout time.Duration) *MySQLDialer {
	d := NewMySQLDialer(config.DatabaseConfig{DialTimeout: timeout})
	d.Port = closedPort(t)
	return d
}

func TestDriverConfig(t *testing.T) {
	d := NewMySQLDialer(config.DatabaseConfig{DialTimeout: 2 * time.Second})

	cfg := d.DriverConfig(config.ConnectionParams{
		Host:     "mysql-primary.db.svc",
		Username: "reader",
		Password: "p@ss:word",
		Database: "demo",
		PodName:  "ignored",
		NodeName: "ignored",
	})

	assert.Equal(t, "tcp", cfg.Net)
	assert.Equal(t, "mysql-primary.db.svc:3306", cfg.Addr)
	assert.Equal(t, "reader", cfg.User)
	assert.Equal(t, "p@ss:word", cfg.Passwd)
	assert.Equal(t, "demo", cfg.DBName)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestDriverConfig_LogsThroughZap(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := NewMySQLDialer(config.DatabaseConfig{})
	d.logger = zap.New(core)

	cfg := d.DriverConfig(config.ConnectionParams{Host: "db"})
	require.NotNil(t, cfg.Logger)
	cfg.Logger.Print("packets.go:58: ", "unexpected EOF\n")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "MySQL driver", entries[0].Message)
	assert.Equal(t, "packets.go:58: unexpected EOF", entries[0].ContextMap()["detail"])
}

func TestDriverConfig_IPv6Host(t *testing.T) {
	d := NewMySQLDialer(config.DatabaseConfig{})
	cfg := d.DriverConfig(config.ConnectionParams{Host: "fd00::10"})
	assert.Equal(t, "[fd00::10]:3306", cfg.Addr)
}

func TestDriverConfig_EmptyParamsPassThrough(t *testing.T) {
	d := NewMySQLDialer(config.DatabaseConfig{})
	cfg := d.DriverConfig(config.ConnectionParams{})
	assert.Equal(t, ":3306", cfg.Addr)
	assert.Empty(t, cfg.User)
	assert.Empty(t, cfg.DBName)
}

func TestConnectError(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:3306: connect: connection refused")
	err := fmt.Errorf("wrapped: %w", &ConnectError{Addr: "10.0.0.1:3306", Err: cause})

	assert.True(t, errors.Is(err, ErrConnect))
	assert.True(t, errors.Is(err, cause))

	var ce *ConnectError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, cause.Error(), ce.Error())
}

// closedPort returns a localhost port with nothing listening on it.
func closedPort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestDial_UnreachableReturnsConnectError(t *testing.T) {
	d := unreachableDialer(t, 2*time.Second)

	store, err := d.Dial(context.Background(), config.ConnectionParams{
		Host:     "127.0.0.1",
		Username: "reader",
		Password: "secret",
		Database: "demo",
	})

	require.Error(t, err)
	assert.Nil(t, store)
	assert.True(t, errors.Is(err, ErrConnect))

	var ce *ConnectError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Addr, "127.0.0.1:")
	assert.NotEmpty(t, ce.Error())
}

func TestProbe_Unreachable(t *testing.T) {
	d := unreachableDialer(t, time.Second)
	err := d.Probe(context.Background(), config.ConnectionParams{Host: "127.0.0.1"})
	assert.True(t, errors.Is(err, ErrConnect))
}
