package indexer

import (
	"errors"
	"fmt"
)

var (
	ErrRateLimited = errors.New("rate limited")
	ErrNotFound    = errors.New("not found")
	ErrHTTP        = errors.New("http error")
	ErrTransport   = errors.New("transport error")
)

// Error is returned by every upstream call. It unwraps to one of the kind sentinels above.
type Error struct {
	Kind     error
	Endpoint string
	Status   int // http status, only for ErrHTTP
	Message  string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s: status %d: %s", e.Endpoint, e.Kind, e.Status, e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Endpoint, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Endpoint, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, endpoint, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Endpoint: endpoint, Message: fmt.Sprintf(format, args...)}
}
