package sources

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// FetchErrorKind classifies fetch failures. Timeout, render-timeout and
// upstream 5xx are transient; a 404, malformed URL or config gap is not.
type FetchErrorKind string

const (
	FetchNetwork       FetchErrorKind = "network-unreachable"
	FetchTimeout       FetchErrorKind = "timeout"
	FetchHTTPStatus    FetchErrorKind = "http-status-error"
	FetchRenderTimeout FetchErrorKind = "rendering-timeout"
	// FetchBadConfig marks a request that cannot even be built (missing URL
	// pattern or story ID). Never transient: retrying cannot fix config.
	FetchBadConfig FetchErrorKind = "bad-config"
)

// FetchError is a failed page retrieval.
type FetchError struct {
	Source string
	Kind   FetchErrorKind
	Status int // HTTP status for FetchHTTPStatus, zero otherwise
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: fetch failed (%s, status %d): %v", e.Source, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: fetch failed (%s): %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Transient reports whether the failure is worth retrying: timeouts,
// network errors and server-side 5xx responses.
func (e *FetchError) Transient() bool {
	switch e.Kind {
	case FetchTimeout, FetchRenderTimeout, FetchNetwork:
		return true
	case FetchHTTPStatus:
		return e.Status >= 500
	}
	return false
}

// ClassifyFetchErr wraps a transport error into a FetchError, sorting
// timeouts out from general network failures.
func ClassifyFetchErr(source string, err error) *FetchError {
	kind := FetchNetwork
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		kind = FetchTimeout
	} else if errors.Is(err, context.DeadlineExceeded) {
		kind = FetchTimeout
	}
	return &FetchError{Source: source, Kind: kind, Err: err}
}

// RetryableFetch is the predicate handed to the retry wrapper.
func RetryableFetch(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Transient()
	}
	return false
}

// ParseErrorKind classifies parse failures.
type ParseErrorKind string

const (
	ParseSchemaMismatch ParseErrorKind = "schema-mismatch"
	ParseNoData         ParseErrorKind = "no-data-found"
)

// ParseError is a failed extraction. It never aborts the pipeline; the
// affected source contributes zero records for the week.
type ParseError struct {
	Source string
	Kind   ParseErrorKind
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: parse failed (%s): %v", e.Source, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: parse failed (%s)", e.Source, e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Err }
