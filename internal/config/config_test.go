package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SHELL_MCP_CONFIG", "SHELL_MCP_LOG_LEVEL", "SHELL_MCP_SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.ConfigPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SHELL_MCP_CONFIG", "/etc/shell-mcp.yaml")
	t.Setenv("SHELL_MCP_LOG_LEVEL", "debug")
	t.Setenv("SHELL_MCP_TRANSPORT", "http")
	t.Setenv("SHELL_MCP_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("SHELL_MCP_TEMP_DIR", "/var/tmp")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		ConfigPath:      "/etc/shell-mcp.yaml",
		LogLevel:        "debug",
		Transport:       "http",
		ShutdownTimeout: 3 * time.Second,
		TempDir:         "/var/tmp",
	}, cfg)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SHELL_MCP_SHUTDOWN_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
