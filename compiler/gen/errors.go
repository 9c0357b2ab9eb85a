// Package gen holds the metadata model and generation plumbing for scaffold.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidArgument indicates a missing or empty required argument.
	ErrInvalidArgument = errors.New("scaffold: invalid argument")
	// ErrInvalidSchema indicates a schema description error.
	ErrInvalidSchema = errors.New("scaffold: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("scaffold: missing configuration")
)

// ArgumentError reports a programming-contract violation: a required
// argument was nil or empty. It is the only error the emitters return.
type ArgumentError struct {
	Arg     string
	Message string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("scaffold: invalid argument %q: %s", e.Arg, e.Message)
}

// Is reports whether the target matches the sentinel error for ArgumentError.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewArgumentError creates a new ArgumentError.
func NewArgumentError(arg, message string) *ArgumentError {
	return &ArgumentError{Arg: arg, Message: message}
}

// IsArgumentError reports whether err is an ArgumentError.
func IsArgumentError(err error) bool {
	var e *ArgumentError
	return errors.As(err, &e)
}

// SchemaError represents a schema description error.
type SchemaError struct {
	Entity   string // entity name
	Property string // property or navigation name, if applicable
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("scaffold: schema error")
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Property != "" {
		b.WriteString(" member ")
		b.WriteString(e.Property)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(entity, property, message string, cause error) *SchemaError {
	return &SchemaError{
		Entity:   entity,
		Property: property,
		Message:  message,
		Cause:    cause,
	}
}

// IsSchemaError reports whether err is a SchemaError.
func IsSchemaError(err error) bool {
	var e *SchemaError
	return errors.As(err, &e)
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("scaffold: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("scaffold: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// IsConfigError reports whether err is a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}
