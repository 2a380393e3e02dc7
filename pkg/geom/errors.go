package geom

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// CodeInvalidParameter marks rejected input: a zero scale component or a
	// rotation matrix that is not orthonormal.
	CodeInvalidParameter Code = "INVALID_PARAMETER"
	// CodeSingular marks a configuration with no well-defined answer, such as
	// Euler angles of a reflection or the inverse of a singular block.
	CodeSingular Code = "SINGULAR"
	// CodeUnrepresentable marks a result the receiving kind cannot hold, e.g.
	// folding a scale into a Combi.
	CodeUnrepresentable Code = "UNREPRESENTABLE"
	// CodeNotFound marks a registry miss.
	CodeNotFound Code = "NOT_FOUND"
)

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrInvalidParameter = &Error{Code: CodeInvalidParameter}
	ErrSingular         = &Error{Code: CodeSingular}
	ErrUnrepresentable  = &Error{Code: CodeUnrepresentable}
	ErrNotFound         = &Error{Code: CodeNotFound}
)

// Error is a coded error raised by a transform operation.
type Error struct {
	Code    Code   // category
	Op      string // operation, e.g. "Scale.SetScale"
	Message string // human-readable detail
	Cause   error  // optional underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code Code, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// GetCode extracts the code of err, or "" when err is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// New returns a coded error for op.
func New(code Code, op, message string) *Error {
	return &Error{Code: code, Op: op, Message: message}
}

// Wrap attaches a code and operation to err. A nil err yields nil.
func Wrap(err error, code Code, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Op: op, Cause: err}
}
