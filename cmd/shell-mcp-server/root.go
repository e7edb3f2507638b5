package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/bherrmann7/shell-mcp-server/configs"
	"github.com/bherrmann7/shell-mcp-server/internal/app"
	"github.com/bherrmann7/shell-mcp-server/internal/audit"
	"github.com/bherrmann7/shell-mcp-server/internal/config"
	"github.com/bherrmann7/shell-mcp-server/internal/constants"
	"github.com/bherrmann7/shell-mcp-server/internal/dsl"
	"github.com/bherrmann7/shell-mcp-server/internal/executor"
	"github.com/bherrmann7/shell-mcp-server/internal/log"
	"github.com/bherrmann7/shell-mcp-server/internal/render"
	"github.com/bherrmann7/shell-mcp-server/internal/runtime"
	"github.com/bherrmann7/shell-mcp-server/internal/startup"
)

type serveOptions struct {
	configPath     string
	embeddedConfig string
	transport      string
}

func newRootCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "shell-mcp-server",
		Short: "Serve shell command execution over MCP",
		Long: `shell-mcp-server exposes shell command execution as MCP tools.

Commands run through /bin/bash on Unix and cmd.exe on Windows. The server
speaks MCP over stdio by default, or streamable HTTP when configured.

Environment:
  SHELL_MCP_CONFIG            YAML config path (default: embedded config)
  SHELL_MCP_LOG_LEVEL         debug, info, warn or error (default: info)
  SHELL_MCP_TRANSPORT         stdio or http, overrides the config file
  SHELL_MCP_SHUTDOWN_TIMEOUT  graceful HTTP shutdown (default: 10s)
  SHELL_MCP_TEMP_DIR          directory for script files`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to the YAML config file (overrides SHELL_MCP_CONFIG)")
	cmd.Flags().StringVar(&opts.embeddedConfig, "embedded-config", "", "use a bundled config by filename")
	cmd.Flags().StringVarP(&opts.transport, "transport", "t", "", "transport to serve: stdio or http")
	cmd.MarkFlagsMutuallyExclusive("config", "embedded-config")

	cmd.AddCommand(newExecCmd())
	return cmd
}

func runServe(parent context.Context, opts *serveOptions) error {
	envCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if opts.configPath != "" {
		envCfg.ConfigPath = opts.configPath
	}
	if opts.transport != "" {
		envCfg.Transport = opts.transport
	}

	logger := log.New(envCfg.LogLevel)

	dslCfg, err := loadServerConfig(envCfg.ConfigPath, opts.embeddedConfig)
	if err != nil {
		logger.Error("load config failed", "error", err)
		return err
	}
	if err := applyTransport(dslCfg, envCfg.Transport); err != nil {
		logger.Error("invalid transport", "error", err)
		return err
	}

	baseCtx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Warn("shutdown requested", "signal", sig.String())
			cancel()
		case <-baseCtx.Done():
		}
	}()

	exec := executor.New(executor.WithLogger(logger), executor.WithTempDir(envCfg.TempDir))
	auditLog := audit.New(logger)

	if err := startup.Run(baseCtx, dslCfg.Server.StartupHooks, exec, auditLog, logger); err != nil {
		logger.Error("startup hooks failed", "error", err)
		return err
	}

	builder := runtime.Builder{
		Logger:   logger,
		Audit:    auditLog,
		Executor: exec,
	}
	server, err := builder.Build(dslCfg)
	if err != nil {
		logger.Error("build server failed", "error", err)
		return err
	}
	logger.Info("server ready",
		"name", dslCfg.Server.Name,
		"version", dslCfg.Server.Version,
		"transport", dslCfg.Server.Transport,
		"interpreter", exec.Interpreter().Name(),
	)

	switch dslCfg.Server.Transport {
	case constants.TransportHTTP:
		err = runHTTP(baseCtx, envCfg, dslCfg, server, logger)
	default:
		err = runStdio(baseCtx, server)
	}
	if err != nil {
		logger.Error("runtime error", "error", err)
		return err
	}
	return nil
}

// loadServerConfig renders and parses the YAML config. An embedded name wins
// over a path; with neither, the bundled default is used.
func loadServerConfig(path, embeddedName string) (*dsl.Config, error) {
	var (
		rendered []byte
		err      error
	)
	switch {
	case embeddedName != "":
		rendered, err = renderEmbedded(embeddedName)
	case path != "":
		rendered, err = render.RenderFile(path)
	default:
		rendered, err = renderEmbedded(configs.DefaultName)
	}
	if err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}

	cfg, err := dsl.Load(rendered)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func renderEmbedded(name string) ([]byte, error) {
	raw, err := configs.Load(name)
	if err != nil {
		return nil, err
	}
	return render.RenderBytes(name, raw)
}

func applyTransport(cfg *dsl.Config, transport string) error {
	switch transport {
	case "":
		return nil
	case constants.TransportStdio, constants.TransportHTTP:
		cfg.Server.Transport = transport
		return nil
	default:
		return fmt.Errorf("unsupported transport: %s", transport)
	}
}

func runStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func runHTTP(ctx context.Context, envCfg config.Config, dslCfg *dsl.Config, server *mcp.Server, logger *slog.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: dslCfg.Server.HTTP.Stateless,
	})

	application, err := app.New(ctx, dslCfg.Server, handler, logger, envCfg.ShutdownTimeout)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}
