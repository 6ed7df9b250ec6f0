// Package errors provides standardized error handling for the peekd
// application. It defines the error kinds raised by view operations and
// helper functions for consistent error creation, wrapping, and checking.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File resolution kinds
	NoFileSelected
	FileNotFound
	// View operation kinds
	TooManyFiles
	MultiFileColumnify
	ProcessInvocationFailed
	// Command registry kinds
	InvalidCommandKey
	DuplicateCommandKey
	// Config kinds
	InvalidConfig
	// Interactive-input cancellation
	Cancelled
)

// Common error constants for frequently occurring conditions
var (
	ErrNoFileSelected = NewViewError("no file selected", NoFileSelected, nil)
	ErrTooManyFiles   = NewViewError("command accepts only one file", TooManyFiles, nil)
	ErrMultiFile      = NewViewError("columnify requires a single-file view", MultiFileColumnify, nil)
	ErrCancelled      = NewViewError("operation cancelled", Cancelled, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// ViewError represents errors raised by view operations (create, refresh,
// switch, columnify) and file resolution.
type ViewError struct {
	ApplicationError
	view string
}

// NewViewError creates a new view error
func NewViewError(msg string, kind ErrorKind, err error) *ViewError {
	return &ViewError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
	}
}

// WithView returns a copy of the error tagged with the display name of
// the view it relates to. The receiver is not modified, so the shared
// sentinel errors stay view-free.
func (e *ViewError) WithView(name string) *ViewError {
	tagged := *e
	tagged.view = name
	return &tagged
}

// Error returns the view error message
func (e *ViewError) Error() string {
	if e.view != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.view, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.view)
	}
	return e.ApplicationError.Error()
}

// View returns the view name associated with the error
func (e *ViewError) View() string {
	return e.view
}

// ProcessError represents a failure to invoke an external program
type ProcessError struct {
	ApplicationError
	program string
	argv    []string
}

// NewProcessError creates a new process invocation error
func NewProcessError(program string, argv []string, err error) *ProcessError {
	return &ProcessError{
		ApplicationError: ApplicationError{
			msg:  "process invocation failed",
			err:  err,
			kind: ProcessInvocationFailed,
		},
		program: program,
		argv:    argv,
	}
}

// Error returns the process error message
func (e *ProcessError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.msg, e.program, e.err)
	}
	return fmt.Sprintf("%s: %s", e.msg, e.program)
}

// Program returns the program name associated with the error
func (e *ProcessError) Program() string {
	return e.program
}

// Argv returns the full argument vector of the failed invocation
func (e *ProcessError) Argv() []string {
	return e.argv
}

// CommandError represents errors related to the command registry
type CommandError struct {
	ApplicationError
	key rune
}

// NewCommandError creates a new command registry error
func NewCommandError(msg string, key rune, kind ErrorKind, err error) *CommandError {
	return &CommandError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		key: key,
	}
}

// Error returns the command error message
func (e *CommandError) Error() string {
	if e.key != 0 {
		return fmt.Sprintf("%s: %q", e.msg, e.key)
	}
	return e.ApplicationError.Error()
}

// Key returns the selector key associated with the error
func (e *CommandError) Key() rune {
	return e.key
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidConfig,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

func kindOf(err error) ErrorKind {
	type kinder interface {
		Kind() ErrorKind
	}
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// IsNoFileSelected checks if the error reports that no file could be resolved
func IsNoFileSelected(err error) bool {
	return kindOf(err) == NoFileSelected
}

// IsTooManyFiles checks if the error reports a violated single-file constraint
func IsTooManyFiles(err error) bool {
	return kindOf(err) == TooManyFiles
}

// IsMultiFileColumnify checks if the error reports columnify on a multi-file view
func IsMultiFileColumnify(err error) bool {
	return kindOf(err) == MultiFileColumnify
}

// IsProcessInvocationFailed checks if the error reports a failed external program
func IsProcessInvocationFailed(err error) bool {
	return kindOf(err) == ProcessInvocationFailed
}

// IsInvalidCommandKey checks if the error reports an unregistered selector key
func IsInvalidCommandKey(err error) bool {
	return kindOf(err) == InvalidCommandKey
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	return kindOf(err) == InvalidConfig
}

// IsFileNotFound checks if the error reports a missing file
func IsFileNotFound(err error) bool {
	return kindOf(err) == FileNotFound
}

// IsCancelled checks if the error reports a user-cancelled interaction
func IsCancelled(err error) bool {
	return kindOf(err) == Cancelled
}
