package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bherrmann7/shell-mcp-server/internal/constants"
	"github.com/bherrmann7/shell-mcp-server/internal/dsl"
	"github.com/bherrmann7/shell-mcp-server/internal/executor"
)

func runExec(t *testing.T, args ...string) (executor.Result, error) {
	t.Helper()
	t.Setenv("SHELL_MCP_TEMP_DIR", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"exec"}, args...))
	err := cmd.Execute()

	var res executor.Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &res), "stdout: %s", stdout.String())
	return res, err
}

func TestExec_Success(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses bash syntax")
	}
	dir := t.TempDir()
	res, err := runExec(t, "--workdir", dir, "--env", "NAME=world", "--", `echo "hello $NAME"`)
	require.NoError(t, err)
	assert.Equal(t, executor.Result{Success: true, Output: "hello world", ExitCode: 0}, res)
}

func TestExec_FailureExitsNonZero(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses bash syntax")
	}
	res, err := runExec(t, "--", "echo bad >&2; exit 4")
	require.ErrorIs(t, err, errCommandFailed)
	assert.Equal(t, executor.Result{Success: false, Error: "bad", ExitCode: 4}, res)
}

func TestExec_ValidationFailure(t *testing.T) {
	res, err := runExec(t, "--timeout", "0s", "--", "echo hi")
	require.ErrorIs(t, err, errCommandFailed)
	assert.Equal(t, executor.Result{Error: "Timeout must be greater than 0", ExitCode: -1}, res)
}

func TestExec_RequiresCommand(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"exec"})
	assert.Error(t, cmd.Execute())
}

func TestLoadServerConfig_EmbeddedDefault(t *testing.T) {
	cfg, err := loadServerConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, "shell-mcp-server", cfg.Server.Name)
	require.Len(t, cfg.Tools, 2)
	assert.Equal(t, constants.ToolExecuteShell, cfg.Tools[0].Name)
	assert.Equal(t, constants.ToolExecuteBash, cfg.Tools[1].Name)
}

func TestLoadServerConfig_EmbeddedByName(t *testing.T) {
	cfg, err := loadServerConfig("ignored.yaml", "minimal.yaml")
	require.NoError(t, err)
	require.Len(t, cfg.Tools, 1)
	assert.Equal(t, constants.VariantBash, cfg.Tools[0].Variant)
}

func TestLoadServerConfig_File(t *testing.T) {
	t.Setenv("TEST_SERVER_NAME", "from-env")
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  name: {{ env "TEST_SERVER_NAME" }}
  version: 1.0.0
`), 0o600))

	cfg, err := loadServerConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Server.Name)
	assert.Equal(t, constants.TransportStdio, cfg.Server.Transport)
}

func TestLoadServerConfig_Errors(t *testing.T) {
	_, err := loadServerConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.ErrorContains(t, err, "render config")

	_, err = loadServerConfig("", "nope.yaml")
	assert.ErrorContains(t, err, "render config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  name: x\n  version: 1.0.0\n  bogus: true\n"), 0o600))
	_, err = loadServerConfig(path, "")
	assert.ErrorContains(t, err, "parse config")
}

func TestApplyTransport(t *testing.T) {
	cfg := &dsl.Config{Server: dsl.ServerConfig{Transport: constants.TransportStdio}}

	require.NoError(t, applyTransport(cfg, ""))
	assert.Equal(t, constants.TransportStdio, cfg.Server.Transport)

	require.NoError(t, applyTransport(cfg, constants.TransportHTTP))
	assert.Equal(t, constants.TransportHTTP, cfg.Server.Transport)

	assert.EqualError(t, applyTransport(cfg, "grpc"), "unsupported transport: grpc")
}
