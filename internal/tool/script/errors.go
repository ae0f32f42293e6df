package script

import (
	"errors"
	"fmt"
)

// Script errors.
var (
	// ErrClosed is returned when using a closed script.
	ErrClosed = errors.New("script closed")

	// ErrNoStart indicates a script that defines no start function.
	ErrNoStart = errors.New("script defines no start function")

	// ErrBadResult indicates a return value that is not a list of edits.
	ErrBadResult = errors.New("script returned an invalid edit list")
)

// Error wraps a failure inside a named script.
type Error struct {
	Name string // Tool name
	Func string // Lua function being run, if any
	Err  error
}

func (e *Error) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("script %s: %s: %v", e.Name, e.Func, e.Err)
	}
	return fmt.Sprintf("script %s: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
