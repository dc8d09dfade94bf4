package errors

import "net/http"

var ErrNotRoomMember = &Exception{
	Kind:       KindUnauthorized,
	Message:    "user is not a member of this room",
	StatusCode: http.StatusForbidden,
}
