package errors

import "net/http"

// ErrClaimConflict is the normal outcome of losing a claim race. It is
// reported with 409 and is not a fault; callers should re-query and
// pick another task rather than retry.
var ErrClaimConflict = &Exception{
	Kind:       KindConflict,
	Message:    "task already claimed by another worker",
	StatusCode: http.StatusConflict,
}
