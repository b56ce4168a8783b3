package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Shugur-Network/podreader/internal/config"
	"github.com/Shugur-Network/podreader/internal/domain"
	"github.com/Shugur-Network/podreader/internal/handler"
	"github.com/Shugur-Network/podreader/internal/identity"
	"github.com/Shugur-Network/podreader/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingDialer struct{ err error }

func (d failingDialer) Dial(context.Context, config.ConnectionParams) (domain.MessageStore, error) {
	return nil, d.err
}

func TestRenderPage_ConnectFailurePrinted(t *testing.T) {
	h := handler.New(config.NewEnv(),
		failingDialer{err: &storage.ConnectError{Err: errors.New("connection refused")}},
		identity.NewResolver())

	var out bytes.Buffer
	require.NoError(t, renderPage(context.Background(), &out, h))
	assert.Equal(t, "Failed to connect to MySQL: connection refused\n", out.String())
}

func TestRenderPage_FaultPrintsNothing(t *testing.T) {
	h := handler.New(config.NewEnv(), failingDialer{err: errors.New("driver panic")}, identity.NewResolver())

	var out bytes.Buffer
	assert.Error(t, renderPage(context.Background(), &out, h))
	assert.Empty(t, out.String())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--detailed"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Version: dev")
	assert.Contains(t, out.String(), "Commit: unknown")
}

func TestRootCommand_EnvFileAndConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("MYSQL_HOST=db.local\nNODE_NAME=node-a\n"), 0o600))

	// Restored after the test; godotenv writes straight into the process env.
	t.Setenv(config.EnvMySQLHost, "")
	t.Setenv(config.EnvNodeName, "")
	t.Setenv(config.EnvMySQLPassword, "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "--env-file", envPath})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		envFile = ""
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.Equal(t, "db.local", os.Getenv(config.EnvMySQLHost))
	assert.Contains(t, out.String(), "MYSQL_HOST: true")
	assert.Contains(t, out.String(), "NODE_NAME: true")
	assert.NotContains(t, out.String(), "db.local")
}
