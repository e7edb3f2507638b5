//go:build unix

package executor

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

const foldEnvKeys = false

// configureProcessTree starts the child in its own process group so the
// whole tree can be signalled on timeout.
func configureProcessTree(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	cmd.Cancel = func() error {
		return killTree(cmd.Process)
	}
}

func killTree(p *os.Process) error {
	if p == nil {
		return nil
	}
	if err := unix.Kill(-p.Pid, unix.SIGKILL); err != nil {
		return p.Kill()
	}
	return nil
}

// exitStatus returns the exit code of a finished child and whether it exited
// on its own. A child terminated by a signal reports 128+signo, as shells do.
func exitStatus(state *os.ProcessState) (int, bool) {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		return state.ExitCode(), state.Exited()
	}
	if ws.Signaled() {
		return 128 + int(ws.Signal()), false
	}
	return ws.ExitStatus(), true
}

// setInlineCommand has no raw command line outside Windows; the command is
// passed as a single argument.
func setInlineCommand(cmd *exec.Cmd, _ string, command string) {
	cmd.Args = append(cmd.Args, "/c", command)
}
