//go:build windows

package executor

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"golang.org/x/sys/windows"
)

const foldEnvKeys = true

// configureProcessTree starts the child in a new process group and kills
// the whole tree with taskkill on timeout.
func configureProcessTree(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= windows.CREATE_NEW_PROCESS_GROUP
	cmd.Cancel = func() error {
		return killTree(cmd.Process)
	}
}

func killTree(p *os.Process) error {
	if p == nil {
		return nil
	}
	kill := exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(p.Pid))
	if err := kill.Run(); err != nil {
		return p.Kill()
	}
	return nil
}

// exitStatus returns the exit code of a finished child. A tree killed by
// taskkill exits with an ordinary code, so only the cancel hook tells a
// timeout apart on Windows.
func exitStatus(state *os.ProcessState) (int, bool) {
	return state.ExitCode(), false
}

// setInlineCommand sets the raw command line so cmd.exe sees the command
// text exactly as given, wrapped in one pair of quotes.
func setInlineCommand(cmd *exec.Cmd, path, command string) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CmdLine = fmt.Sprintf(`%s /c "%s"`, path, command)
}
