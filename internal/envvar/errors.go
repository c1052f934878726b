package envvar

import (
	"fmt"
	"io/fs"

	"github.com/hexops/winenv/internal/errors"
)

var (
	// ErrNotFound is returned when a variable is absent or empty.
	ErrNotFound = errors.New("environment variable not found or empty")

	// ErrRegistryKindValueWrong is returned when appending to a value that is
	// not a string, or when writing an empty value without a declared type.
	ErrRegistryKindValueWrong = errors.New("registry value kind must be String or ExpandString")

	// ErrDelimiterNotDetected is returned when several segments would be merged
	// without a delimiter.
	ErrDelimiterNotDetected = errors.New("a delimiter is required to merge multiple values")

	// ErrPermissionDenied is returned when the store refuses the write.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrArgument is returned when the store rejects the name or value.
	ErrArgument = errors.New("invalid argument")

	// ErrScopeUnsupported is returned by environments that cannot reach a scope.
	ErrScopeUnsupported = errors.New("scope not supported on this platform")
)

// Error describes a failed operation on a single variable.
type Error struct {
	Op    string // e.g. "get", "set", "delete"
	Name  string
	Scope Scope
	Code  error // one of the Err* sentinels
	Err   error // underlying cause, if any
}

func (e *Error) Error() string {
	subject := e.Scope.String()
	if e.Name != "" {
		subject = fmt.Sprintf("%s (%s)", e.Name, e.Scope)
	}
	msg := fmt.Sprintf("%s %s: %v", e.Op, subject, e.Code)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the code of e.
func (e *Error) Is(target error) bool {
	return target == e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// storeError wraps a failure reported by an Environment, classifying it as
// ErrPermissionDenied when the store refused access and ErrArgument otherwise.
func storeError(op, name string, scope Scope, err error) *Error {
	code := ErrArgument
	switch {
	case errors.Is(err, fs.ErrPermission):
		code = ErrPermissionDenied
	case errors.Is(err, ErrScopeUnsupported):
		code = ErrScopeUnsupported
	}
	return &Error{Op: op, Name: name, Scope: scope, Code: code, Err: err}
}
