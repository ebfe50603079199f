//go:build !windows
// +build !windows

package main

import (
	"os"
	"syscall"

	"golang.org/x/term"
)

// initialTermState is captured before any prompt runs so the terminal can be
// restored if the process exits from inside a raw-mode prompt.
var initialTermState *term.State

func init() {
	if st, err := term.GetState(int(os.Stdin.Fd())); err == nil {
		initialTermState = st
	}
}

// drainStdin discards any bytes pending on stdin, such as cursor-position
// reports the terminal queued in response to survey's \033[6n queries.
// Without this drain those responses appear as garbage in later readLine calls.
func drainStdin() {
	fd := int(os.Stdin.Fd())
	if err := syscall.SetNonblock(fd, true); err != nil {
		return
	}
	defer func() { _ = syscall.SetNonblock(fd, false) }()

	buf := make([]byte, 256)
	for {
		n, err := syscall.Read(fd, buf)
		if n <= 0 || err != nil {
			break
		}
	}
	stdinReader.Reset(os.Stdin)
}

// restoreTTYOnExit puts the terminal back in its original mode. Called from
// the SIGINT handler, which may fire while a prompt holds the tty raw.
func restoreTTYOnExit() {
	if initialTermState != nil {
		_ = term.Restore(int(os.Stdin.Fd()), initialTermState)
	}
}
