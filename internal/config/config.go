package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config stores environment-driven settings for the server.
type Config struct {
	// ConfigPath is the path to the YAML configuration file. Empty uses the embedded default.
	ConfigPath string `env:"SHELL_MCP_CONFIG"`
	// LogLevel sets the logger level.
	LogLevel string `env:"SHELL_MCP_LOG_LEVEL" envDefault:"info"`
	// Transport overrides the transport declared in the YAML config.
	Transport string `env:"SHELL_MCP_TRANSPORT"`
	// ShutdownTimeout controls graceful shutdown duration.
	ShutdownTimeout time.Duration `env:"SHELL_MCP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// TempDir is where script files are written. Empty uses the OS temp dir.
	TempDir string `env:"SHELL_MCP_TEMP_DIR"`
}

// Load parses environment variables into Config.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
