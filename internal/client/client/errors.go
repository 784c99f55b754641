package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrUnexpected  = errors.New("unexpected response")
)

// APIError is a non-2xx answer from the server. Err is one of the sentinels
// above and Message is the text the server sent back, if any.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Err, e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }

func mapStatus(status int, msg string) error {
	var err error
	switch {
	case status == http.StatusBadRequest:
		err = ErrValidation
	case status == http.StatusNotFound:
		err = ErrNotFound
	case status >= http.StatusInternalServerError:
		err = ErrUnavailable
	default:
		err = ErrUnexpected
	}
	return &APIError{Status: status, Message: msg, Err: err}
}
