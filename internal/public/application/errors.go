package application

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials はメールアドレスとパスワードの組が一致しないことを示す。
// 未登録・無効化済み・パスワード不一致を呼び出し側から区別させない。
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError represents input rejected before any store round-trip.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// NotFoundError indicates a referenced resource that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError builds a NotFoundError with the given message.
func NewNotFoundError(message string) error {
	return &NotFoundError{Message: message}
}

// StoreError wraps an underlying persistence failure. No retry is attempted.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func wrapStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
