package vbox

import (
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes one VBoxManage invocation and returns its stdout.
// The real implementation shells out; tests inject a mock.
type Runner interface {
	Run(args ...string) (string, error)
}

type execRunner struct {
	path string
}

// NewExecRunner returns a Runner that invokes the VBoxManage binary at path.
// Each call blocks until the tool exits; there is no timeout.
func NewExecRunner(path string) Runner {
	return &execRunner{path: path}
}

func (r *execRunner) Run(args ...string) (string, error) {
	out, err := exec.Command(r.path, args...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("VBoxManage %s: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("VBoxManage %s: %w", args[0], err)
	}
	return string(out), nil
}
