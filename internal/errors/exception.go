package errors

import (
	"errors"
	"net/http"
)

// Kind classifies an Exception for retry policy decisions. Only
// KindTransientIO is safe to retry without changing the request.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindUnauthorized      Kind = "unauthorized"
	KindInvalidTransition Kind = "invalid_transition"
	KindConflict          Kind = "conflict"
	KindTransientIO       Kind = "transient_io"
)

type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int
	cause      error
}

func (e *Exception) Error() string {
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.cause
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Retryable reports whether err may be retried as-is with backoff.
func Retryable(err error) bool {
	return KindOf(err) == KindTransientIO
}
