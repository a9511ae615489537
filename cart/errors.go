package cart

import (
	"errors"
	"fmt"
)

// Code classifies an engine failure for HTTP mapping and tests.
type Code int

const (
	CodeInvalid Code = iota + 1 // malformed request, bad enum, unknown add-on
	CodeNotFound                // item, sub-option, or cart absent
	CodeUnavailable             // out of stock, inactive, or stock overflow
	CodeStorage                 // persistence failure
)

// Error is the engine's terminal failure for one operation.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func invalidf(format string, args ...any) *Error {
	return &Error{Code: CodeInvalid, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func unavailablef(format string, args ...any) *Error {
	return &Error{Code: CodeUnavailable, Message: fmt.Sprintf(format, args...)}
}

// storageErr hides infrastructure detail from the caller.
func storageErr() *Error {
	return &Error{Code: CodeStorage, Message: "storage unavailable"}
}

// ErrCode extracts the engine code from an error, 0 if it is not ours.
func ErrCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
