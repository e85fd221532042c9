package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrNotFound marks an absent blob, comment, like set or profile artifact.
	ErrNotFound = errors.New("not found")
	// ErrDecryption marks a wrong key or a corrupted envelope. It is never coerced to an empty result.
	ErrDecryption = errors.New("decryption failed")
	// ErrValidation marks malformed input: addresses, passwords, usernames, filenames.
	ErrValidation = errors.New("validation failed")
	// ErrLedger marks a reverted ledger call or an unreachable node.
	ErrLedger = errors.New("ledger error")
	// ErrUnauthorized marks a password mismatch.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error codes carried by *Error.
const (
	CodeUsernameTaken = "username_taken"
	CodeInvalidInput  = "invalid_input"
	CodeReverted      = "reverted"
)

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation returns an ErrValidation carrying code and message.
func Validation(code, message string) error {
	return WrapWithCode(ErrValidation, code, message)
}

// Invalid is Validation with the generic invalid input code.
func Invalid(format string, args ...any) error {
	return Validation(CodeInvalidInput, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound returns true if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryption returns true if the error is a decryption error
func IsDecryption(err error) bool {
	return errors.Is(err, ErrDecryption)
}

// IsValidation returns true if the error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsLedger returns true if the error came from the ledger
func IsLedger(err error) bool {
	return errors.Is(err, ErrLedger)
}

// IsUnauthorized returns true if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
