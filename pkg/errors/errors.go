package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCredentialNotFound ErrorCode = iota + 1000
	ErrCredentialInvalid
	ErrSeedFailed
	ErrBadRequest
	ErrInternal
)

func NewCredentialNotFound(path string, err error) *AppError {
	return &AppError{
		Code:    ErrCredentialNotFound,
		Message: fmt.Sprintf("service account JSON not found at %s", path),
		Err:     err,
	}
}

func NewCredentialInvalid(path string, err error) *AppError {
	return &AppError{
		Code:    ErrCredentialInvalid,
		Message: fmt.Sprintf("invalid service account JSON at %s", path),
		Err:     err,
	}
}

func NewSeedFailed(err error) *AppError {
	return &AppError{
		Code:    ErrSeedFailed,
		Message: "batch commit failed",
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal error",
		Err:     err,
	}
}

// Shorthands
func CredentialNotFound(path string, err error) *AppError {
	return NewCredentialNotFound(path, err)
}

func CredentialInvalid(path string, err error) *AppError {
	return NewCredentialInvalid(path, err)
}

func SeedFailed(err error) *AppError {
	return NewSeedFailed(err)
}

func BadRequest(message string, err error) *AppError {
	return NewBadRequest(message, err)
}

func Internal(err error) *AppError {
	return NewInternal(err)
}

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

// ExitCode maps an error to a process exit status. Every failure exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
