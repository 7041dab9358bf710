package api

import (
	"errors"
	"fmt"
)

// ClientError is the sentinel error type of the client.
type ClientError string

func (e ClientError) Error() string {
	return string(e)
}

const (
	ErrNoFileSelected   ClientError = "no drawing file selected"
	ErrAmbiguousMessage ClientError = "player message has conflicting prompt fields"
	ErrNoGameID         ClientError = "no game id resolved"
	ErrNotLoggedIn      ClientError = "not logged in"
)

// NetworkError is a transport failure: the request may succeed if retried.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: server returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Retryable() bool {
	return true
}

// RejectedError is an application level refusal, either a status "ERROR"
// payload or a 4xx response.
type RejectedError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: rejected by server", e.Op)
	}
	return fmt.Sprintf("%s: rejected by server: %s", e.Op, e.Message)
}

func (e *RejectedError) Retryable() bool {
	return false
}

// MalformedResponseError reports a payload that did not match its schema.
type MalformedResponseError struct {
	Op  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func (e *MalformedResponseError) Retryable() bool {
	return false
}

// ValidationError reports bad input caught before any request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Retryable() bool {
	return false
}

// IsRetryable reports whether any error in err's chain is a retryable failure.
func IsRetryable(err error) bool {
	var retryable interface{ Retryable() bool }
	if errors.As(err, &retryable) {
		return retryable.Retryable()
	}
	return false
}

// IsRejected reports whether err is a server-side rejection.
func IsRejected(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected)
}
