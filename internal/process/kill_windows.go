//go:build windows

// Package process terminates the headless browser together with its helpers.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its child tree with taskkill and
// reports whether taskkill succeeded. Non-positive pids are refused.
func KillProcessGroup(pid int) bool {
	if pid <= 0 {
		return false
	}
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() == nil
}
