// Package vbox drives VirtualBox through its VBoxManage command-line tool.
//
// VBoxManage is the sole source of truth for hypervisor-level facts. Every
// query goes through the Runner interface; raw tool output never leaves this
// package — parse.go turns it into typed values.
package vbox

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/bcktools/vbox-vm-bootstrap/configs"
)

// ErrToolNotFound reports a missing VBoxManage installation.
var ErrToolNotFound = errors.New("VBoxManage not found")

// Locate checks the fixed VirtualBox install path for the current OS and
// returns it. The PATH is not searched.
func Locate(cfg configs.ToolDefaults) (string, error) {
	return locateForOS(cfg, runtime.GOOS)
}

func locateForOS(cfg configs.ToolDefaults, goos string) (string, error) {
	path := cfg.PathForOS(goos)
	if path == "" {
		return "", fmt.Errorf("%w: no install path known for %s", ErrToolNotFound, goos)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w at %s", ErrToolNotFound, path)
		}
		return "", fmt.Errorf("check %s: %w", path, err)
	}
	return path, nil
}
