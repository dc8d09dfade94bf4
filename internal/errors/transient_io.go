package errors

import "net/http"

// TransientIO wraps an underlying storage or network failure. This is
// the only class eligible for automatic retry with backoff.
func TransientIO(cause error) *Exception {
	return &Exception{
		Kind:       KindTransientIO,
		Message:    "storage temporarily unavailable",
		StatusCode: http.StatusServiceUnavailable,
		cause:      cause,
	}
}
