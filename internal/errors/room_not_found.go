package errors

import "net/http"

var ErrRoomNotFound = &Exception{
	Kind:       KindNotFound,
	Message:    "chat room not found",
	StatusCode: http.StatusNotFound,
}
