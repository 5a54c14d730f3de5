// Package errors gives mumplot failures a machine-readable [Code].
//
// The pipeline returns coded errors for bad options, malformed match records,
// missing inputs and failed writes. The CLI turns the code into an exit
// status with [ExitCode] and prints [UserMessage] without the code prefix.
//
//	err := errors.New(errors.ErrCodeInvalidInput, "alpha %v outside [0, 1]", alpha)
//	errors.Is(err, errors.ErrCodeInvalidInput) // true
//
//	err = errors.Wrap(errors.ErrCodeWriteFailed, cause, "write %s", path)
//	errors.ExitCode(err) // 73
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidMatch  Code = "INVALID_MATCH" // malformed or inconsistent match record
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeWriteFailed   Code = "WRITE_FAILED"
)

// Exit statuses follow sysexits.h.
var exitCodes = map[Code]int{
	ErrCodeInvalidInput:  64, // EX_USAGE
	ErrCodeInvalidFormat: 64,
	ErrCodeInvalidPath:   64,
	ErrCodeInvalidMatch:  65, // EX_DATAERR
	ErrCodeFileNotFound:  66, // EX_NOINPUT
	ErrCodeWriteFailed:   73, // EX_CANTCREAT
}

// Error carries a code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// ExitCode maps err to a process exit status: 0 for nil, a sysexits value for
// coded errors, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if c, ok := exitCodes[GetCode(err)]; ok {
		return c
	}
	return 1
}

// UserMessage returns err's text without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}
