package models

import (
	"time"
)

// ErrorKind is the stable machine-readable failure code carried in the
// response envelope. Clients should branch on this, not on Message.
type ErrorKind string

const (
	ErrKindValidation         ErrorKind = "validation"
	ErrKindNotFound           ErrorKind = "not_found"
	ErrKindAccountInactive    ErrorKind = "account_inactive"
	ErrKindInvalidCredentials ErrorKind = "invalid_credentials"
	ErrKindDuplicate          ErrorKind = "duplicate"
	ErrKindDelivery           ErrorKind = "delivery"
	ErrKindInternal           ErrorKind = "internal"
)

// DirectoryError is a typed operation failure: a stable kind plus the
// human-readable message shown to portal users.
type DirectoryError struct {
	Kind    ErrorKind
	Message string
}

func (e *DirectoryError) Error() string {
	return e.Message
}

// Response is the uniform envelope returned by every portal operation.
// Data is present (possibly null) on every response; Error only on
// failures.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Error     ErrorKind   `json:"error,omitempty"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// OK builds a success envelope.
func OK(message string, data interface{}) *Response {
	return &Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Fail builds a failure envelope with a stable error kind.
func Fail(kind ErrorKind, message string) *Response {
	return &Response{
		Success:   false,
		Message:   message,
		Error:     kind,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
