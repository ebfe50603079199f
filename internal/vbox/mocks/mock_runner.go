// Package mocks provides a testify-based mock Runner for testing without a
// real VirtualBox installation.
package mocks

import (
	"github.com/stretchr/testify/mock"
)

// Runner is a mock for vbox.Runner. Expectations take the full argv as a
// single []string so call order can be asserted from Calls.
type Runner struct {
	mock.Mock
}

func (r *Runner) Run(args ...string) (string, error) {
	res := r.Called(args)
	return res.String(0), res.Error(1)
}

// Argv returns the recorded VBoxManage argument vectors in call order.
func (r *Runner) Argv() [][]string {
	var argv [][]string
	for _, c := range r.Calls {
		if c.Method != "Run" {
			continue
		}
		argv = append(argv, c.Arguments.Get(0).([]string))
	}
	return argv
}
