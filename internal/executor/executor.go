// Package executor runs a single shell command on the host and reports its
// output, error stream and exit code as a Result. Every failure, including
// invalid input, timeouts and spawn errors, is encoded in the Result.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultWaitDelay bounds how long Wait keeps draining pipes after the
// child exits or is killed.
const DefaultWaitDelay = 2 * time.Second

// Executor runs commands through an Interpreter.
type Executor struct {
	interpreter Interpreter
	logger      *slog.Logger
	tempDir     string
	waitDelay   time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithInterpreter overrides the host interpreter selection.
func WithInterpreter(interpreter Interpreter) Option {
	return func(e *Executor) {
		e.interpreter = interpreter
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithTempDir sets where the default bash interpreter writes script files.
func WithTempDir(dir string) Option {
	return func(e *Executor) {
		e.tempDir = dir
	}
}

// WithWaitDelay overrides DefaultWaitDelay.
func WithWaitDelay(delay time.Duration) Option {
	return func(e *Executor) {
		e.waitDelay = delay
	}
}

// New builds an Executor. The interpreter is selected once here from the
// host OS unless WithInterpreter is given.
func New(opts ...Option) *Executor {
	e := &Executor{waitDelay: DefaultWaitDelay}
	for _, opt := range opts {
		opt(e)
	}
	if e.interpreter == nil {
		e.interpreter = DefaultInterpreter(e.tempDir)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Interpreter returns the selected interpreter.
func (e *Executor) Interpreter() Interpreter {
	return e.interpreter
}

// Execute validates req, runs it and returns the result. It blocks until the
// command completes or req.Timeout elapses. Cancelling ctx does not stop a
// running command; only the timeout does.
func (e *Executor) Execute(ctx context.Context, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure(fmt.Sprintf("%s%v", msgException, r))
		}
	}()

	if msg := validate(req); msg != "" {
		return Failure(msg)
	}
	return e.run(ctx, req)
}

func validate(req Request) string {
	if strings.TrimSpace(req.Command) == "" {
		return msgEmptyCommand
	}
	if req.WorkingDirectory != "" {
		info, err := os.Stat(req.WorkingDirectory)
		if err != nil || !info.IsDir() {
			return msgMissingWorkDir + req.WorkingDirectory
		}
	}
	if req.Timeout <= 0 {
		return msgBadTimeout
	}
	return ""
}

func (e *Executor) run(ctx context.Context, req Request) Result {
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), req.Timeout)
	defer cancel()

	cmd, cleanup, err := e.interpreter.Command(runCtx, req.Command)
	if err != nil {
		e.logger.Debug("command setup failed", "interpreter", e.interpreter.Name(), "error", err)
		return Failure(msgException + err.Error())
	}
	defer cleanup()

	if req.WorkingDirectory != "" {
		cmd.Dir = req.WorkingDirectory
	}
	cmd.Env = mergeEnv(os.Environ(), req.Env)

	var stdout, stderr lineBuffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = e.waitDelay
	configureProcessTree(cmd)

	// killed is set only when the deadline fires while the child is running.
	var killed atomic.Bool
	killTree := cmd.Cancel
	cmd.Cancel = func() error {
		killed.Store(true)
		return killTree()
	}

	started := time.Now()
	if err := cmd.Start(); err != nil {
		e.logger.Debug("command spawn failed", "interpreter", e.interpreter.Name(), "error", err)
		return Failure(msgException + err.Error())
	}
	e.logger.Debug("command started", "interpreter", e.interpreter.Name(), "pid", cmd.Process.Pid)

	waitErr := cmd.Wait()
	elapsed := time.Since(started)

	if cmd.ProcessState == nil {
		if killed.Load() {
			return timedOut(req.Timeout)
		}
		return Failure(msgException + waitErr.Error())
	}

	// A child that exited on its own keeps its exit code even when Wait
	// returned after the deadline, e.g. while a background job held its pipes.
	exitCode, exited := exitStatus(cmd.ProcessState)
	if killed.Load() && !exited {
		e.logger.Debug("command timed out", "pid", cmd.Process.Pid, "timeout", req.Timeout, "elapsed", elapsed)
		return timedOut(req.Timeout)
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		// The process exited but its pipes were held open past the wait delay.
		e.logger.Debug("command wait incomplete", "pid", cmd.Process.Pid, "error", waitErr)
	}

	e.logger.Debug("command finished", "pid", cmd.Process.Pid, "exit_code", exitCode, "elapsed", elapsed)
	return Result{
		Success:  exitCode == 0,
		Output:   stdout.String(),
		Error:    stderr.String(),
		ExitCode: exitCode,
	}
}
