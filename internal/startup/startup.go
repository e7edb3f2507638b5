package startup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bherrmann7/shell-mcp-server/internal/audit"
	"github.com/bherrmann7/shell-mcp-server/internal/dsl"
	"github.com/bherrmann7/shell-mcp-server/internal/executor"
	"github.com/bherrmann7/shell-mcp-server/internal/runtime"
	"github.com/bherrmann7/shell-mcp-server/internal/timeutil"
)

// Run executes configured startup hooks sequentially through exec.
// The first unsuccessful hook stops the sequence and is returned as an error.
func Run(ctx context.Context, hooks []dsl.HookConfig, exec runtime.Executor, auditLog audit.Logger, logger *slog.Logger) error {
	if len(hooks) > 0 && exec == nil {
		return fmt.Errorf("executor is nil")
	}
	for idx, hook := range hooks {
		if strings.TrimSpace(hook.Command) == "" {
			continue
		}
		req := executor.Request{
			Command:          hook.Command,
			WorkingDirectory: hook.WorkingDirectory,
			Timeout:          timeutil.ParseDurationOrDefault(hook.Timeout, executor.DefaultTimeout),
			Env:              hook.Env,
		}

		if logger != nil {
			logger.Info("running startup hook", "index", idx)
		}
		res := exec.Execute(ctx, req)

		event := audit.Event{Type: audit.TypeStartupHook, Tool: fmt.Sprintf("hook[%d]", idx), ExitCode: res.ExitCode}
		if !res.Success {
			event.Reason = res.Error
		}
		if auditLog != nil {
			auditLog.Record(ctx, event)
		}

		if !res.Success {
			if logger != nil {
				logger.Error("startup hook failed", "index", idx, "exit_code", res.ExitCode, "output", res.Output, "error", res.Error)
			}
			if res.ExitCode == executor.NoExitCode {
				return fmt.Errorf("startup hook %d failed: %s", idx, res.Error)
			}
			return fmt.Errorf("startup hook %d failed: exit status %d", idx, res.ExitCode)
		}
		if logger != nil && res.Output != "" {
			logger.Info("startup hook output", "index", idx, "output", res.Output)
		}
	}
	return nil
}
