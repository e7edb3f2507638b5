package dsl

import (
	"fmt"
	"strings"
	"time"

	"github.com/bherrmann7/shell-mcp-server/internal/constants"
)

// Default descriptions for the built-in tool variants.
const (
	DefaultShellDescription = "Execute a shell command and return the result on the user's local machine. Uses bash on Unix/Linux/macOS and cmd.exe on Windows."
	DefaultBashDescription  = "Execute a bash command and return the result."
)

// DefaultTools returns the tools registered when the config declares none.
func DefaultTools() []ToolConfig {
	return []ToolConfig{
		{Name: constants.ToolExecuteShell, Variant: constants.VariantShell},
		{Name: constants.ToolExecuteBash, Variant: constants.VariantBash},
	}
}

// Validate applies defaults and verifies required fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(cfg.Server.Name) == "" {
		return fmt.Errorf("server.name is required")
	}
	if strings.TrimSpace(cfg.Server.Version) == "" {
		return fmt.Errorf("server.version is required")
	}

	cfg.Server.Transport = strings.ToLower(strings.TrimSpace(cfg.Server.Transport))
	switch cfg.Server.Transport {
	case "":
		cfg.Server.Transport = constants.TransportStdio
	case constants.TransportStdio, constants.TransportHTTP:
	default:
		return fmt.Errorf("server.transport must be stdio or http")
	}
	if err := checkDuration("server.shutdown_timeout", cfg.Server.ShutdownTimeout); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.Server.HTTP.Listen) == "" {
		cfg.Server.HTTP.Listen = ":8080"
	}
	if cfg.Server.HTTP.Path == "" {
		cfg.Server.HTTP.Path = "/mcp"
	}
	if !strings.HasPrefix(cfg.Server.HTTP.Path, "/") {
		return fmt.Errorf("server.http.path must start with /")
	}
	for field, value := range map[string]string{
		"server.http.read_timeout":  cfg.Server.HTTP.ReadTimeout,
		"server.http.write_timeout": cfg.Server.HTTP.WriteTimeout,
		"server.http.idle_timeout":  cfg.Server.HTTP.IdleTimeout,
	} {
		if err := checkDuration(field, value); err != nil {
			return err
		}
	}

	for i, hook := range cfg.Server.StartupHooks {
		if strings.TrimSpace(hook.Command) == "" {
			return fmt.Errorf("server.startup_hooks[%d].command is required", i)
		}
		if err := checkPositiveDuration(fmt.Sprintf("server.startup_hooks[%d].timeout", i), hook.Timeout); err != nil {
			return err
		}
	}

	if len(cfg.Tools) == 0 {
		cfg.Tools = DefaultTools()
	}
	toolNames := map[string]struct{}{}
	for i := range cfg.Tools {
		tool := &cfg.Tools[i]
		if tool.Name == "" {
			return fmt.Errorf("tools[%d].name is required", i)
		}
		if _, exists := toolNames[tool.Name]; exists {
			return fmt.Errorf("duplicate tool name: %s", tool.Name)
		}
		toolNames[tool.Name] = struct{}{}

		tool.Variant = strings.ToLower(strings.TrimSpace(tool.Variant))
		switch tool.Variant {
		case constants.VariantShell:
			if tool.Description == "" {
				tool.Description = DefaultShellDescription
			}
		case constants.VariantBash:
			if tool.Description == "" {
				tool.Description = DefaultBashDescription
			}
		default:
			return fmt.Errorf("tools[%d].variant must be shell or bash", i)
		}
		if err := checkPositiveDuration(fmt.Sprintf("tools[%d].default_timeout", i), tool.DefaultTimeout); err != nil {
			return err
		}
		if tool.Limits.MaxTotal < 0 {
			return fmt.Errorf("tools[%d].limits.max_total must be >= 0", i)
		}
		if tool.Limits.RatePerMinute < 0 {
			return fmt.Errorf("tools[%d].limits.rate_per_minute must be >= 0", i)
		}
	}

	return nil
}

func checkDuration(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := time.ParseDuration(value); err != nil {
		return fmt.Errorf("%s is invalid: %w", field, err)
	}
	return nil
}

func checkPositiveDuration(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", field, err)
	}
	if parsed <= 0 {
		return fmt.Errorf("%s must be greater than 0", field)
	}
	return nil
}
