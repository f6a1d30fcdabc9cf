// Package apperr defines the error taxonomy shared by the stores, the forum
// services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindConflict          Kind = "conflict"
	KindNotFound          Kind = "not_found"
	KindInvalidCredential Kind = "invalid_credential"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindValidation        Kind = "validation"
	KindStoreFailure      Kind = "store_failure"
)

// Error is a classified failure with a machine-stable code and the HTTP
// status it surfaces as.
type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperr.ErrNotFound)
// works regardless of code or message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == "" && t.Kind == e.Kind
}

// WithStatus returns a copy of e that surfaces with a different HTTP status.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

// Sentinels for errors.Is checks.
var (
	ErrConflict          = &Error{Kind: KindConflict}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidCredential = &Error{Kind: KindInvalidCredential}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrStoreFailure      = &Error{Kind: KindStoreFailure}
)

// Conflict surfaces as 400 to stay compatible with existing clients.
func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusBadRequest, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Code: code, Message: message}
}

func InvalidCredential(message string) *Error {
	return &Error{Kind: KindInvalidCredential, Status: http.StatusBadRequest, Code: "invalid_credentials", Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Code: "unauthorized", Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Code: "forbidden", Message: message}
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Code: code, Message: message}
}

// StoreFailure hides the cause from callers; it is kept for logging.
func StoreFailure(op string, err error) *Error {
	return &Error{Kind: KindStoreFailure, Status: http.StatusInternalServerError, Code: "store_failure", Message: op + " failed", Err: err}
}

// From classifies any error. Unclassified errors become store failures.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return StoreFailure("request", err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
