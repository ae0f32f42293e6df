package config

import (
	"errors"
	"fmt"

	"github.com/dshills/pixelstorm/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidConfig indicates a configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrTypeMismatch indicates a value of the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Field is the setting path that failed validation.
	Field string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Message)
}

// Unwrap returns ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// TypeError reports a setting whose value has the wrong type.
type TypeError struct {
	Field string
	Want  string
	Got   any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s: want %s, got %T", ErrTypeMismatch, e.Field, e.Want, e.Got)
}

func (e *TypeError) Unwrap() error {
	return ErrTypeMismatch
}
