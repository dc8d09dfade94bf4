package errors

import "net/http"

var ErrNotTaskClaimant = &Exception{
	Kind:       KindUnauthorized,
	Message:    "only the accepting worker may advance this task",
	StatusCode: http.StatusForbidden,
}
