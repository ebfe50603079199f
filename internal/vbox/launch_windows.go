//go:build windows
// +build windows

package vbox

import (
	"fmt"
	"os/exec"
	"path/filepath"
)

// LaunchDescriptor opens the generated .vbox descriptor file as a detached
// OS-level process, which makes VirtualBox bring up the machine's window.
// Fire-and-forget: the run does not wait for the machine to boot.
func LaunchDescriptor(path string) error {
	// "start" needs an explicit (empty) window title when the path is quoted.
	cmd := exec.Command("cmd", "/c", "start", "", path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", filepath.Base(path), err)
	}
	return cmd.Process.Release()
}
