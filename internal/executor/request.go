package executor

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is applied when a caller does not choose a timeout.
const DefaultTimeout = 30 * time.Second

// NoExitCode is reported when the process did not produce a real exit code.
const NoExitCode = -1

// Request describes a single command invocation.
type Request struct {
	// Command is the raw command text passed to the interpreter.
	Command string
	// WorkingDirectory overrides the child's starting directory when non-empty.
	WorkingDirectory string
	// Timeout bounds the wall-clock run time. Must be greater than zero.
	Timeout time.Duration
	// Env overrides variables inherited from the parent environment.
	Env map[string]string
}

// NewRequest returns a request for command with default settings.
func NewRequest(command string) Request {
	return Request{Command: command, Timeout: DefaultTimeout}
}

// Result is the outcome of one invocation.
type Result struct {
	// Success is true iff the process ran to completion with exit code 0.
	Success bool `json:"success" jsonschema:"True when the command completed with exit code 0."`
	// Output is the captured standard output.
	Output string `json:"output" jsonschema:"Captured standard output with trailing newlines trimmed."`
	// Error is the captured standard error or a failure message.
	Error string `json:"error" jsonschema:"Captured standard error, or a validation, timeout or internal failure message."`
	// ExitCode is the process exit code, -1 when none exists.
	ExitCode int `json:"exitCode" jsonschema:"Process exit code; -1 when the command did not run to completion."`
}

// Failure messages.
const (
	msgEmptyCommand   = "Command cannot be empty"
	msgMissingWorkDir = "Working directory does not exist: "
	msgBadTimeout     = "Timeout must be greater than 0"
	msgException      = "Exception occurred: "
)

// Failure returns a result for a command that produced no exit code.
func Failure(message string) Result {
	return Result{Success: false, Error: message, ExitCode: NoExitCode}
}

const msgTimedOut = "Command timed out after "

func timedOut(timeout time.Duration) Result {
	return Failure(msgTimedOut + formatSeconds(timeout) + " seconds")
}

// TimedOut reports whether r is the result of a command killed at its deadline.
func (r Result) TimedOut() bool {
	return r.ExitCode == NoExitCode && strings.HasPrefix(r.Error, msgTimedOut)
}

// formatSeconds prints whole seconds without a fraction ("30") and keeps
// sub-second precision otherwise ("0.5").
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
