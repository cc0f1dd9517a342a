//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// SetGroup is a no-op on Windows; KillGroup uses taskkill's tree mode instead.
func SetGroup(cmd *exec.Cmd) {}

// KillGroup kills a process and all its children using taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillGroup(pid int) {
	// Best-effort cleanup; the caller still waits on the process afterwards.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
