package preview

import (
	"errors"
	"fmt"
	"github.com/xyths/tezos-preview/indexer"
	"strings"
)

var (
	// ErrNoLinksFound means the message has nothing to preview. It is not a failure.
	ErrNoLinksFound = errors.New("no marketplace links found")
	ErrValidation   = errors.New("card validation failed")

	ErrRateLimited = indexer.ErrRateLimited
	ErrNotFound    = indexer.ErrNotFound
	ErrHTTP        = indexer.ErrHTTP
	ErrTransport   = indexer.ErrTransport
)

// LinkError is the failure of a single link, keyed by the matched url.
type LinkError struct {
	URL string
	Err error
}

func (e LinkError) Error() string {
	return fmt.Sprintf("%s: %s", e.URL, e.Err)
}

func (e LinkError) Unwrap() error {
	return e.Err
}

// AggregateError is returned when every link of a message failed.
type AggregateError struct {
	Failures []LinkError
}

func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("all %d links failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

func (e *AggregateError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}
