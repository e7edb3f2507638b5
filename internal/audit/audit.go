package audit

import (
	"context"
	"log/slog"
)

// Event types.
const (
	TypeToolCall    = "tool_call"
	TypeToolDenied  = "tool_denied"
	TypeToolOK      = "tool_ok"
	TypeToolFailed  = "tool_failed"
	TypeToolTimeout = "tool_timeout"
	TypeStartupHook = "startup_hook"
)

// Event represents an audit entry for a command execution.
type Event struct {
	// Type describes the event kind.
	Type string
	// Tool is the tool name.
	Tool string
	// RunID links the events of one invocation.
	RunID string
	// ExitCode is the command exit code, -1 when none exists.
	ExitCode int
	// Reason provides additional context.
	Reason string
}

// Logger records audit events.
type Logger interface {
	// Record stores an audit event.
	Record(ctx context.Context, event Event)
}

// StdLogger writes audit events to slog.
type StdLogger struct {
	logger *slog.Logger
}

// New returns a StdLogger.
func New(logger *slog.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// Record logs an audit event.
func (l *StdLogger) Record(ctx context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.InfoContext(ctx, "audit",
		"type", event.Type,
		"tool", event.Tool,
		"run_id", event.RunID,
		"exit_code", event.ExitCode,
		"reason", event.Reason,
	)
}
