package main

import "errors"

// Exit codes.
const (
	exitSuccess      = 0 // every op canonicalized
	exitFailure      = 1 // diagnostics with errors, or abandoned functions
	exitCommandError = 2 // bad flags, unreadable input or config
)

// exitError carries the exit code of a failed command.
type exitError struct {
	code int
	msg  string
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *exitError) Unwrap() error {
	return e.err
}

func commandError(msg string, err error) error {
	return &exitError{code: exitCommandError, msg: msg, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitFailure
}
