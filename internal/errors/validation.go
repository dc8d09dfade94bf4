package errors

import "net/http"

// Validation builds a terminal bad-input error. Callers must not retry
// without changing the request.
func Validation(msg string) *Exception {
	return &Exception{
		Kind:       KindValidation,
		Message:    msg,
		StatusCode: http.StatusBadRequest,
	}
}
