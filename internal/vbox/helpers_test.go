package vbox

import (
	"os"

	"github.com/stretchr/testify/mock"
)

// mockAnyArgs matches any VBoxManage argument vector.
var mockAnyArgs = mock.MatchedBy(func([]string) bool { return true })

func writeFakeTool(path string) error {
	return os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755)
}
