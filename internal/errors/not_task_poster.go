package errors

import "net/http"

var ErrNotTaskPoster = &Exception{
	Kind:       KindUnauthorized,
	Message:    "only the poster may cancel this task",
	StatusCode: http.StatusForbidden,
}
