// Package domainerrors carries coded errors from services to transports.
//
// Services return errors created with New or Wrap; handlers translate the code
// into a transport status (see pkg/platform/httputil). Stores never create
// coded errors directly; they return sentinel errors and let services decide.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error independent of any transport.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeValidation         Code = "validation_error"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
	CodeInvariantViolation Code = "invariant_violation"
	CodeTooManyRequests    Code = "too_many_attempts"

	// Vote admission and ledger codes.
	CodeBiometricUnavailable Code = "biometric_unavailable"
	CodeBiometricCancelled   Code = "biometric_cancelled"
	CodeBiometricFailed      Code = "biometric_failed"
	CodeDuplicateVote        Code = "duplicate_vote"
	CodeLedgerIntegrity      Code = "ledger_integrity"
	CodeStorage              Code = "storage_error"
)

// Error is a domain error with a stable code and a message safe to show to
// callers. The wrapped cause is never rendered to clients.
type Error struct {
	Code    Code
	Message string
	Err     error
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

// New creates a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and client-safe message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether any error in the chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	for err != nil {
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// CodeOf returns the outermost code in the chain, or CodeInternal for
// errors that were never classified.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost client-safe message.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}
