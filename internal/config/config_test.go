package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Database.DialTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "podreader.yaml")
	content := `server:
  addr: "127.0.0.1:8181"
  rate_limit:
    enabled: true
    requests_per_second: 5
    burst: 2
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8181", cfg.Server.Addr)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, 5.0, cfg.Server.RateLimit.RequestsPerSecond)
	assert.Equal(t, 2, cfg.Server.RateLimit.Burst)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	// untouched sections keep their defaults
	assert.Equal(t, 5*time.Second, cfg.Database.DialTimeout)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PODREADER_SERVER_ADDR", ":8088")
	t.Setenv("PODREADER_LOGGING_LEVEL", "warn")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8088", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "bad log level",
			content: "logging:\n  level: loud\n",
			wantMsg: "must be one of: debug, info, warn, error, fatal",
		},
		{
			name:    "bad listen address",
			content: "server:\n  addr: \"not an address\"\n",
			wantMsg: "must be a listen address",
		},
		{
			name:    "metrics on server port",
			content: "server:\n  addr: \":8080\"\nmetrics:\n  addr: \"0.0.0.0:8080\"\n",
			wantMsg: "conflicts with server address",
		},
		{
			name:    "timeout too short",
			content: "server:\n  read_timeout: 10ms\n",
			wantMsg: "between 1 second and 1 hour",
		},
		{
			name:    "rate limit without rate",
			content: "server:\n  rate_limit:\n    enabled: true\n    requests_per_second: 0\n",
			wantMsg: "greater than 0 when rate limiting is enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, err := Load(path, nil)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  listen: \":80\"\n"), 0o644))

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal config")
}

func TestLoad_DatabasePortNotConfigurable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  port: 3307\n"), 0o644))

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal config")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestDump_RedactsConnectionValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvMySQLPassword, "hunter2")
	t.Setenv(EnvMySQLHost, "mysql.default.svc")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, cfg, NewEnv()))

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "mysql.default.svc")
	assert.Contains(t, out, "MYSQL_PASSWORD: true")
	assert.Contains(t, out, "dial_timeout: 5s")
}
