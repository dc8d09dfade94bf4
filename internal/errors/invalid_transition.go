package errors

import "net/http"

// InvalidTransition builds a terminal state-machine rejection.
func InvalidTransition(msg string) *Exception {
	return &Exception{
		Kind:       KindInvalidTransition,
		Message:    msg,
		StatusCode: http.StatusUnprocessableEntity,
	}
}
