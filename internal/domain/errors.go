package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable machine-readable reason returned in API error
// bodies. The HTTP layer maps each code to a status.
type ErrorCode string

const (
	CodeValidation        ErrorCode = "VALIDATION"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeForbidden         ErrorCode = "FORBIDDEN"
	CodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeSignatureMismatch ErrorCode = "SIGNATURE_MISMATCH"
	CodeAlreadyConfirmed  ErrorCode = "ALREADY_CONFIRMED"
	CodeGateway           ErrorCode = "GATEWAY_ERROR"
	CodeInternal          ErrorCode = "INTERNAL"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is comparisons against another *Error by code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Errf builds a coded error with a formatted message.
func Errf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapErr attaches a code and message to an underlying error.
func WrapErr(code ErrorCode, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the error code, defaulting to INTERNAL for uncoded errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
