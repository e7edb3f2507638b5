package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bherrmann7/shell-mcp-server/internal/constants"
)

const minimal = `
server:
  name: shell-mcp-server
  version: 1.0.0
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, constants.TransportStdio, cfg.Server.Transport)
	assert.Equal(t, ":8080", cfg.Server.HTTP.Listen)
	assert.Equal(t, "/mcp", cfg.Server.HTTP.Path)
	require.Len(t, cfg.Tools, 2)
	assert.Equal(t, constants.ToolExecuteShell, cfg.Tools[0].Name)
	assert.Equal(t, DefaultShellDescription, cfg.Tools[0].Description)
	assert.Equal(t, constants.ToolExecuteBash, cfg.Tools[1].Name)
	assert.Equal(t, DefaultBashDescription, cfg.Tools[1].Description)
}

func TestLoad_Full(t *testing.T) {
	data := `
server:
  name: ops
  version: 2.0.0
  transport: HTTP
  shutdown_timeout: 5s
  http:
    listen: 127.0.0.1:9000
    path: /rpc
    stateless: true
  startup_hooks:
    - command: echo ready
      timeout: 5s
      env:
        STAGE: boot
tools:
  - name: run
    variant: shell
    default_timeout: 1m
    limits:
      rate_per_minute: 10
      max_total: 100
    annotations:
      open_world_hint: true
  - name: quick
    variant: bash
    description: quick one
    disabled: true
`
	cfg, err := Load([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, constants.TransportHTTP, cfg.Server.Transport)
	assert.True(t, cfg.Server.HTTP.Stateless)
	require.Len(t, cfg.Server.StartupHooks, 1)
	assert.Equal(t, map[string]string{"STAGE": "boot"}, cfg.Server.StartupHooks[0].Env)
	require.Len(t, cfg.Tools, 2)
	assert.Equal(t, LimitsConfig{MaxTotal: 100, RatePerMinute: 10}, cfg.Tools[0].Limits)
	require.NotNil(t, cfg.Tools[0].Annotations)
	require.NotNil(t, cfg.Tools[0].Annotations.OpenWorldHint)
	assert.True(t, *cfg.Tools[0].Annotations.OpenWorldHint)
	assert.Equal(t, "quick one", cfg.Tools[1].Description)
	assert.True(t, cfg.Tools[1].Disabled)
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load([]byte(minimal + "  colour: blue\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]struct {
		yaml string
		want string
	}{
		"missing name": {
			yaml: "server:\n  version: 1.0.0\n",
			want: "server.name is required",
		},
		"missing version": {
			yaml: "server:\n  name: x\n",
			want: "server.version is required",
		},
		"bad transport": {
			yaml: minimal + "  transport: grpc\n",
			want: "server.transport must be stdio or http",
		},
		"bad path": {
			yaml: minimal + "  http:\n    path: mcp\n",
			want: "server.http.path must start with /",
		},
		"bad read timeout": {
			yaml: minimal + "  http:\n    read_timeout: fast\n",
			want: "server.http.read_timeout is invalid",
		},
		"empty hook": {
			yaml: minimal + "  startup_hooks:\n    - command: ' '\n",
			want: "server.startup_hooks[0].command is required",
		},
		"zero hook timeout": {
			yaml: minimal + "  startup_hooks:\n    - command: ls\n      timeout: 0s\n",
			want: "server.startup_hooks[0].timeout must be greater than 0",
		},
		"unnamed tool": {
			yaml: minimal + "tools:\n  - variant: bash\n",
			want: "tools[0].name is required",
		},
		"duplicate tool": {
			yaml: minimal + "tools:\n  - name: a\n    variant: bash\n  - name: a\n    variant: shell\n",
			want: "duplicate tool name: a",
		},
		"bad variant": {
			yaml: minimal + "tools:\n  - name: a\n    variant: zsh\n",
			want: "tools[0].variant must be shell or bash",
		},
		"negative timeout": {
			yaml: minimal + "tools:\n  - name: a\n    variant: bash\n    default_timeout: -1s\n",
			want: "tools[0].default_timeout must be greater than 0",
		},
		"negative rate": {
			yaml: minimal + "tools:\n  - name: a\n    variant: bash\n    limits:\n      rate_per_minute: -1\n",
			want: "tools[0].limits.rate_per_minute must be >= 0",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.EqualError(t, Validate(nil), "config is nil")
}
