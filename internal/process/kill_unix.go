//go:build !windows

// Package process terminates the headless browser together with its helpers.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid and reports
// whether the signal was delivered. Non-positive pids are refused: -0 would
// address the caller's own group.
func KillProcessGroup(pid int) bool {
	if pid <= 0 {
		return false
	}
	return syscall.Kill(-pid, syscall.SIGKILL) == nil
}
