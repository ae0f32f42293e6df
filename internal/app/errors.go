package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend indicates Run was called without a backend.
	ErrNoBackend = errors.New("no backend set")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// InteractionError reports a user input that failed. The event loop logs
// it and keeps running; the editor state is left as the last successful
// dispatch made it.
type InteractionError struct {
	Input  string // "pointer" or "key"
	Action string // what the input asked for, e.g. "press at (3, 2)"
	Err    error
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Input, e.Action, e.Err)
}

func (e *InteractionError) Unwrap() error {
	return e.Err
}

// interaction wraps a non-nil err from input.
func interaction(input, action string, err error) error {
	if err == nil {
		return nil
	}
	return &InteractionError{Input: input, Action: action, Err: err}
}
