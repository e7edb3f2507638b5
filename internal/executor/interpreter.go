package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Interpreter turns a command string into a child process for the host's
// command interpreter. Implementations must build the process with
// exec.CommandContext(ctx, ...) so the executor can enforce its deadline.
type Interpreter interface {
	// Name identifies the interpreter in logs.
	Name() string
	// Command builds the process for command. The returned cleanup func is
	// never nil and must be called once the process has finished.
	Command(ctx context.Context, command string) (*exec.Cmd, func(), error)
}

// DefaultInterpreter selects the interpreter for the host OS.
func DefaultInterpreter(tempDir string) Interpreter {
	if runtime.GOOS == "windows" {
		return CommandProcessor{}
	}
	return BashScript{TempDir: tempDir}
}

// BashScript writes the command verbatim to a temporary file and runs it as
// a bash script, so the command text never goes through shell quoting.
type BashScript struct {
	// Shell is the bash binary. Defaults to /bin/bash.
	Shell string
	// TempDir holds the script files. Defaults to os.TempDir().
	TempDir string
}

// Name returns the interpreter name.
func (b BashScript) Name() string {
	return "bash-script"
}

// Command writes the script file and builds the bash process.
func (b BashScript) Command(ctx context.Context, command string) (*exec.Cmd, func(), error) {
	shell := b.Shell
	if shell == "" {
		shell = "/bin/bash"
	}

	file, err := os.CreateTemp(b.TempDir, "shell-mcp-*.sh")
	if err != nil {
		return nil, nil, fmt.Errorf("create script file: %w", err)
	}
	path := file.Name()
	cleanup := func() {
		_ = os.Remove(path)
	}

	// Go strings are UTF-8 already; writing the bytes as-is means no BOM.
	if _, err := file.WriteString(command); err != nil {
		_ = file.Close()
		cleanup()
		return nil, nil, fmt.Errorf("write script file: %w", err)
	}
	if err := file.Close(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("close script file: %w", err)
	}

	return exec.CommandContext(ctx, shell, path), cleanup, nil
}

// CommandProcessor runs the command inline through cmd.exe /c.
type CommandProcessor struct {
	// Path is the command processor binary. Defaults to cmd.exe.
	Path string
}

// Name returns the interpreter name.
func (c CommandProcessor) Name() string {
	return "cmd"
}

// Command builds the cmd.exe process with the raw command line.
func (c CommandProcessor) Command(ctx context.Context, command string) (*exec.Cmd, func(), error) {
	path := c.Path
	if path == "" {
		path = "cmd.exe"
	}
	cmd := exec.CommandContext(ctx, path)
	setInlineCommand(cmd, path, command)
	return cmd, func() {}, nil
}
