package domain

import "fmt"

// Messages shown to the user when a backend call fails
const (
	MsgSearchFailed     = "Search failed"
	MsgProxyFetchFailed = "Proxy fetch failed"
)

// NetworkError is a failed backend call: a non-2xx response or a transport error.
// Message is the fixed, user-facing text; Status and Err carry the detail for logs.
type NetworkError struct {
	Message string
	Status  int   // HTTP status, 0 on transport failure
	Err     error // underlying transport or decode error, if any
}

func (e *NetworkError) Error() string {
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Detail describes the failure for logging
func (e *NetworkError) Detail() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: HTTP %d", e.Message, e.Status)
	default:
		return e.Message
	}
}

// ErrSearchFailed builds the error surfaced when a search call fails
func ErrSearchFailed(status int, err error) *NetworkError {
	return &NetworkError{Message: MsgSearchFailed, Status: status, Err: err}
}

// ErrProxyFetchFailed builds the error surfaced when a proxy fetch fails
func ErrProxyFetchFailed(status int, err error) *NetworkError {
	return &NetworkError{Message: MsgProxyFetchFailed, Status: status, Err: err}
}
