package dsl

// Config is the top-level YAML configuration.
type Config struct {
	// Server describes the MCP server settings.
	Server ServerConfig `yaml:"server"`
	// Tools lists the command tools to expose. Empty registers the defaults.
	Tools []ToolConfig `yaml:"tools"`
}

// ServerConfig defines MCP server settings.
type ServerConfig struct {
	// Name is the MCP server name.
	Name string `yaml:"name"`
	// Version is the MCP server version.
	Version string `yaml:"version"`
	// Instructions are sent to clients during initialization.
	Instructions string `yaml:"instructions"`
	// Transport selects the server transport ("stdio" or "http").
	Transport string `yaml:"transport"`
	// ShutdownTimeout overrides graceful shutdown duration.
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// StartupHooks defines one-time commands executed on start.
	StartupHooks []HookConfig `yaml:"startup_hooks"`
	// HTTP configures HTTP transport.
	HTTP HTTPConfig `yaml:"http"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`
	// Path is the MCP HTTP endpoint path.
	Path string `yaml:"path"`
	// ReadTimeout limits request read time.
	ReadTimeout string `yaml:"read_timeout"`
	// WriteTimeout limits response write time. Empty disables the limit,
	// since a tool call lasts as long as its command.
	WriteTimeout string `yaml:"write_timeout"`
	// IdleTimeout controls idle connections.
	IdleTimeout string `yaml:"idle_timeout"`
	// Stateless disables session tracking.
	Stateless bool `yaml:"stateless"`
}

// ToolConfig declares a command tool exposed by the MCP server.
type ToolConfig struct {
	// Name is the tool name.
	Name string `yaml:"name"`
	// Variant selects the accepted parameters ("shell" or "bash").
	Variant string `yaml:"variant"`
	// Title is the human-friendly tool title.
	Title string `yaml:"title"`
	// Description explains the tool for the agent.
	Description string `yaml:"description"`
	// Disabled hides the tool without removing its declaration.
	Disabled bool `yaml:"disabled"`
	// DefaultTimeout applies when the caller sends no timeout.
	DefaultTimeout string `yaml:"default_timeout"`
	// Annotations provides optional tool hints.
	Annotations *ToolAnnotationsConfig `yaml:"annotations,omitempty"`
	// Limits restricts how often the tool may run.
	Limits LimitsConfig `yaml:"limits"`
}

// LimitsConfig restricts tool usage. Zero values disable a limit.
type LimitsConfig struct {
	// MaxTotal limits total tool calls for the server lifetime.
	MaxTotal int `yaml:"max_total"`
	// RatePerMinute limits calls per minute.
	RatePerMinute int `yaml:"rate_per_minute"`
}

// HookConfig defines a startup hook command.
type HookConfig struct {
	// Command is the command text run through the host interpreter.
	Command string `yaml:"command"`
	// WorkingDirectory overrides the hook's starting directory.
	WorkingDirectory string `yaml:"working_directory"`
	// Env adds environment variables for the hook.
	Env map[string]string `yaml:"env"`
	// Timeout controls hook execution duration.
	Timeout string `yaml:"timeout"`
}

// ToolAnnotationsConfig defines tool behavior hints.
type ToolAnnotationsConfig struct {
	// ReadOnlyHint indicates a read-only tool.
	ReadOnlyHint bool `yaml:"read_only_hint,omitempty"`
	// DestructiveHint indicates the tool may be destructive.
	DestructiveHint *bool `yaml:"destructive_hint,omitempty"`
	// IdempotentHint indicates repeated calls have no additional effect.
	IdempotentHint bool `yaml:"idempotent_hint,omitempty"`
	// OpenWorldHint indicates interaction with external entities.
	OpenWorldHint *bool `yaml:"open_world_hint,omitempty"`
}
