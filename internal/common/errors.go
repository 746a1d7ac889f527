package common

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation           Code = "validation"
	CodeIllegalTransition    Code = "illegal_transition"
	CodeDuplicateApplication Code = "duplicate_application"
	CodeQuotaExceeded        Code = "quota_exceeded"
	CodeJobNotActive         Code = "job_not_active"
	CodeAlreadyResolved      Code = "already_resolved"
	CodeInvalidState         Code = "invalid_state"
	CodeConflict             Code = "conflict"
	CodeContention           Code = "contention"
	CodeUnavailable          Code = "unavailable"
	CodeNotFound             Code = "not_found"
	CodeUnauthorized         Code = "unauthorized"
	CodeForbidden            Code = "forbidden"
	CodeRateLimited          Code = "rate_limited"
	CodeInternal             Code = "internal"
)

type Error struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Permanent reports whether the error must not be retried by the caller.
// Contention, Unavailable, and RateLimited are transient; everything else
// describes a rule violation that a retry cannot fix.
func Permanent(err error) bool {
	switch CodeOf(err) {
	case CodeContention, CodeUnavailable, CodeRateLimited:
		return false
	default:
		return true
	}
}
