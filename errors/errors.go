// Package errors provides the error type used throughout the generator.
// An error carries the component it originated in (e.g. "parse", "annotations", "autogen"), a general error code,
// a message and optionally wraps another error.
// The package also implements convenience functions to check for certain error codes.
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime/debug"
	"strings"
)

// A small set of error codes that describe why code generation failed.
// The CLI uses them to decide whether to abort or to continue with the next interface.
type ErrorCode int

const (
	Unknown ErrorCode = iota
	// source code or an annotation is malformed, e.g. a go file that does not parse or an annotation body that is not valid json
	InvalidArgument
	// a file, directory or go module could not be found
	NotFound
	// the input is well-formed but cannot be generated in the current configuration, e.g. a diagnostic in strict mode
	FailedPrecondition
	// a type or construct the generator does not support
	Unimplemented
	// anything else, e.g. writing a generated file failed
	Internal
)

func (e ErrorCode) String() string {
	s := [...]string{"Unknown", "InvalidArgument", "NotFound", "FailedPrecondition", "Unimplemented", "Internal"}
	if int(e) < len(s) {
		return s[e]
	}
	return "InvalidErrorCode"
}

// Structured error, all fields are optional although it makes sense to always provide the origin and a code.
type Error struct {
	//component this error was created in
	Origin string
	//wrap another error
	Inner      error
	StackTrace []byte

	Code ErrorCode

	//human readable description, e.g. "interface FooService: unknown scheduler directive SWITCH"
	Message string
}

// Errors can be built incrementally by chaining:
//
//	New(err, "parse", InvalidArgument).WithMessage("could not parse directory")
//
// A stack trace is only recorded for the innermost Error.
func New(inner error, origin string, code ErrorCode) Error {
	var stack []byte
	var e Error
	if !stderrors.As(inner, &e) {
		stack = debug.Stack()
	}
	return Error{
		Origin:     origin,
		Inner:      inner,
		StackTrace: stack,
		Code:       code,
	}
}

// Shorthand for New(inner, origin, code).WithMessage(fmt.Sprintf(format, args...)).
func Newf(inner error, origin string, code ErrorCode, format string, args ...interface{}) Error {
	return New(inner, origin, code).WithMessage(fmt.Sprintf(format, args...))
}

// implements the error interface
// The stack trace is not part of the message, use ToMap to log it.
func (e Error) Error() string {
	var b strings.Builder
	if e.Origin != "" {
		b.WriteString(e.Origin)
		b.WriteString(": ")
	}
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString(e.Code.String())
	}
	if e.Inner != nil {
		b.WriteString(": ")
		b.WriteString(e.Inner.Error())
	}
	return b.String()
}

// Unwrap makes Error work with errors.Is and errors.As from the standard library.
func (e Error) Unwrap() error {
	return e.Inner
}

func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// ToMap returns the error as key/value pairs, nested errors are converted recursively.
// Used by log.Logger.WithError to log an error as a structured value.
func (e Error) ToMap() map[string]interface{} {
	m := map[string]interface{}{}
	if e.Origin != "" {
		m["origin"] = e.Origin
	}
	if e.Inner != nil {
		if inner, ok := e.Inner.(Error); ok {
			m["inner"] = inner.ToMap()
		} else {
			m["inner"] = e.Inner.Error()
		}
	}
	if e.StackTrace != nil {
		parts := strings.Split(strings.TrimSpace(string(e.StackTrace)), "\n")
		for i, part := range parts {
			parts[i] = strings.TrimSpace(part)
		}
		m["stackTrace"] = parts
	}
	m["code"] = e.Code.String()
	if e.Message != "" {
		m["message"] = e.Message
	}
	return m
}

// Is reports whether the outermost Error in err's chain has the given code.
func Is(err error, code ErrorCode) bool {
	var e Error
	if !stderrors.As(err, &e) {
		return false
	}
	return e.Code == code
}

func IsInvalidArgumentError(err error) bool {
	return Is(err, InvalidArgument)
}

func IsNotFoundError(err error) bool {
	return Is(err, NotFound)
}

func IsFailedPreconditionError(err error) bool {
	return Is(err, FailedPrecondition)
}

func IsInternalError(err error) bool {
	return Is(err, Internal)
}
