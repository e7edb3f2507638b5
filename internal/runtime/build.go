package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bherrmann7/shell-mcp-server/internal/audit"
	"github.com/bherrmann7/shell-mcp-server/internal/constants"
	"github.com/bherrmann7/shell-mcp-server/internal/dsl"
	"github.com/bherrmann7/shell-mcp-server/internal/executor"
	"github.com/bherrmann7/shell-mcp-server/internal/limits"
	"github.com/bherrmann7/shell-mcp-server/internal/security"
	"github.com/bherrmann7/shell-mcp-server/internal/timeutil"
)

// Executor runs a command request.
type Executor interface {
	// Execute runs req and returns its result. It never fails.
	Execute(ctx context.Context, req executor.Request) executor.Result
}

// ShellInput is the full set of parameters accepted by shell tools.
type ShellInput struct {
	Command              string            `json:"command" jsonschema:"The command to execute."`
	WorkingDirectory     string            `json:"workingDirectory,omitempty" jsonschema:"Directory to run the command in. Must exist. Defaults to the server's working directory."`
	TimeoutSeconds       *int              `json:"timeoutSeconds,omitempty" jsonschema:"Maximum run time in seconds before the command is killed. Defaults to 30."`
	EnvironmentVariables map[string]string `json:"environmentVariables,omitempty" jsonschema:"Environment variables set for the command, overriding inherited values."`
}

// BashInput is accepted by bash tools, which run the command with defaults.
type BashInput struct {
	Command string `json:"command" jsonschema:"The bash command to execute."`
}

// Builder constructs an MCP server from the DSL config.
type Builder struct {
	// Logger is used for structured logging.
	Logger *slog.Logger
	// Audit records tool events.
	Audit audit.Logger
	// Executor runs the commands.
	Executor Executor
	// NewRunID generates invocation IDs. Defaults to random UUIDs.
	NewRunID func() string
}

// Build creates an MCP server with the configured command tools.
func (b Builder) Build(cfg *dsl.Config) (*mcp.Server, error) {
	if b.Executor == nil {
		return nil, fmt.Errorf("executor is nil")
	}
	var opts *mcp.ServerOptions
	if cfg.Server.Instructions != "" {
		opts = &mcp.ServerOptions{Instructions: cfg.Server.Instructions}
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}, opts)

	for _, tool := range cfg.Tools {
		if tool.Disabled {
			continue
		}
		if err := b.addTool(server, tool); err != nil {
			return nil, err
		}
	}
	return server, nil
}

func (b Builder) addTool(server *mcp.Server, tool dsl.ToolConfig) error {
	defaultTimeout := timeutil.ParseDurationOrDefault(tool.DefaultTimeout, executor.DefaultTimeout)
	limiter := limits.New(tool.Limits.MaxTotal, tool.Limits.RatePerMinute)

	mcpTool := &mcp.Tool{
		Name:        tool.Name,
		Title:       tool.Title,
		Description: tool.Description,
		Annotations: buildAnnotations(tool.Annotations),
	}

	switch tool.Variant {
	case constants.VariantShell:
		mcp.AddTool(server, mcpTool, func(ctx context.Context, _ *mcp.CallToolRequest, input ShellInput) (*mcp.CallToolResult, executor.Result, error) {
			req := executor.Request{
				Command:          input.Command,
				WorkingDirectory: input.WorkingDirectory,
				Timeout:          defaultTimeout,
				Env:              input.EnvironmentVariables,
			}
			if input.TimeoutSeconds != nil {
				req.Timeout = timeutil.Seconds(*input.TimeoutSeconds)
			}
			return nil, b.invoke(ctx, tool.Name, limiter, req), nil
		})
	case constants.VariantBash:
		mcp.AddTool(server, mcpTool, func(ctx context.Context, _ *mcp.CallToolRequest, input BashInput) (*mcp.CallToolResult, executor.Result, error) {
			req := executor.NewRequest(input.Command)
			req.Timeout = defaultTimeout
			return nil, b.invoke(ctx, tool.Name, limiter, req), nil
		})
	default:
		return fmt.Errorf("tool %s: unknown variant: %s", tool.Name, tool.Variant)
	}
	return nil
}

func (b Builder) invoke(ctx context.Context, toolName string, limiter *limits.Limiter, req executor.Request) executor.Result {
	runID := b.runID()
	if b.Logger != nil {
		b.Logger.Info("tool call",
			"tool", toolName,
			"run_id", runID,
			"command_bytes", len(req.Command),
			"working_directory", req.WorkingDirectory,
			"timeout", req.Timeout,
			"env", security.RedactEnv(req.Env),
		)
	}
	b.record(ctx, audit.Event{Type: audit.TypeToolCall, Tool: toolName, RunID: runID})

	if decision := limiter.Allow(); !decision.Allowed {
		res := executor.Failure(decision.Reason)
		if b.Logger != nil {
			b.Logger.Warn("tool call denied", "tool", toolName, "run_id", runID, "reason", decision.Reason)
		}
		b.record(ctx, audit.Event{Type: audit.TypeToolDenied, Tool: toolName, RunID: runID, ExitCode: res.ExitCode, Reason: decision.Reason})
		return res
	}

	started := time.Now()
	res := b.Executor.Execute(ctx, req)
	elapsed := time.Since(started)

	event := audit.Event{Tool: toolName, RunID: runID, ExitCode: res.ExitCode}
	switch {
	case res.Success:
		event.Type = audit.TypeToolOK
	case res.TimedOut():
		event.Type = audit.TypeToolTimeout
		event.Reason = res.Error
	default:
		event.Type = audit.TypeToolFailed
		if res.ExitCode == executor.NoExitCode {
			event.Reason = res.Error
		} else {
			event.Reason = fmt.Sprintf("exit status %d", res.ExitCode)
		}
	}
	b.record(ctx, event)

	if b.Logger != nil {
		b.Logger.Info("tool result",
			"tool", toolName,
			"run_id", runID,
			"success", res.Success,
			"exit_code", res.ExitCode,
			"elapsed", elapsed,
		)
	}
	return res
}

func (b Builder) record(ctx context.Context, event audit.Event) {
	if b.Audit != nil {
		b.Audit.Record(ctx, event)
	}
}

func (b Builder) runID() string {
	if b.NewRunID != nil {
		return b.NewRunID()
	}
	return uuid.NewString()
}

func buildAnnotations(cfg *dsl.ToolAnnotationsConfig) *mcp.ToolAnnotations {
	if cfg == nil {
		return nil
	}
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    cfg.ReadOnlyHint,
		DestructiveHint: cfg.DestructiveHint,
		IdempotentHint:  cfg.IdempotentHint,
		OpenWorldHint:   cfg.OpenWorldHint,
	}
}
