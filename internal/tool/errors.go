package tool

import (
	"errors"
	"fmt"
)

// Tool errors.
var (
	// ErrUnknownTool indicates a tool name missing from the registry.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrDuplicateTool indicates a tool name registered twice.
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrInvalidTool indicates an empty name or nil tool.
	ErrInvalidTool = errors.New("invalid tool")
)

// UnknownToolError names the tool that was not found.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownTool, e.Name)
}

func (e *UnknownToolError) Unwrap() error {
	return ErrUnknownTool
}
