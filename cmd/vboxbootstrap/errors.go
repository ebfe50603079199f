package main

import "errors"

// errCancelled marks an operator abort during an interactive prompt.
// main treats it as a quiet exit, not a crash.
var errCancelled = errors.New("cancelled")

type userError struct {
	msg  string
	hint string
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Hint() string  { return e.hint }
