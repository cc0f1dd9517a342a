//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// SetGroup places the child in its own process group so a hung renderer can
// be killed together with any layout-engine children it spawned.
func SetGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillGroup kills a process and all its children by sending SIGKILL to the
// process group (negative PID).
func KillGroup(pid int) {
	// Best-effort cleanup; the caller still waits on the process afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
