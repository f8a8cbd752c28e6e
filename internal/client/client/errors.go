package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// FetchError is a failed read: a transport failure or a non-2xx status.
type FetchError struct {
	Entity  string
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to load %s: status %d: %s", e.Entity, e.Status, e.Message)
	}
	return fmt.Sprintf("failed to load %s: %v", e.Entity, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MutationError is a failed create, update or delete. Message carries the
// backend-supplied text when there was one.
type MutationError struct {
	Op      string
	Entity  string
	Status  int
	Message string
	Err     error
}

func (e *MutationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s failed: status %d: %s", e.Op, e.Entity, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Entity, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// Notice is the text shown to the user: the backend message when present,
// otherwise a generic one.
func (e *MutationError) Notice() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("could not %s %s, please try again", e.Op, e.Entity)
}

// statusError maps an HTTP status to a sentinel error.
func statusError(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusServiceUnavailable, status == http.StatusBadGateway, status == http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return fmt.Errorf("unexpected status %d", status)
	}
}
