package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Request handler paths, relative to the core.
const (
	SearchPath        = "select"
	TermsPath         = "terms"
	SpellPath         = "spell"
	MoreLikeThisPath  = "mlt"
	UpdatePath        = "update"
	UpdateExtractPath = "update/extract"
	PingPath          = "admin/ping"
	SuggestPath       = "suggest"
	StreamPath        = "stream"
)

// maxErrBodySize caps the amount of response body read when
// building an error for an unexpected status code.
const maxErrBodySize = 4 << 10 // 4KB

// execFn represents a func to operate on a response.
type execFn func(response *http.Response) error

var (
	// ErrUnexpectedStatusCode is the sentinel error wrapped by [UnexpectedStatusError].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrAuthFailure is wrapped alongside [ErrUnexpectedStatusCode] when Solr
	// responds with 401 Unauthorized or 403 Forbidden.
	ErrAuthFailure = errors.New("auth failure")
	// ErrNoResultSet is returned by [Client.Stream] when the response
	// carries no result-set documents.
	ErrNoResultSet = errors.New("no result-set docs in response")
	// ErrStreamException is the sentinel error wrapped by [StreamError].
	ErrStreamException = errors.New("stream exception")
)

// UnexpectedStatusError is returned when Solr responds with a status
// other than 200 OK.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}

// StreamError carries the EXCEPTION reported in the final document of
// a streaming expression result set.
type StreamError struct {
	Message string
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%v: %s", ErrStreamException, e.Message)
}

func (e *StreamError) Unwrap() error {
	return ErrStreamException
}

// Params renders request parameters as an encoded query string.
// *query.Query implements it.
type Params interface {
	String() string
}

// RawParams is an already encoded query string.
type RawParams string

func (p RawParams) String() string {
	return string(p)
}
