// Package client talks to the taskkeeper REST API.
//
// Client is the transport-agnostic contract; HTTPClient implements it over
// net/http and JSON. Non-2xx answers come back as *APIError, which matches
// ErrValidation (400), ErrNotFound (404), ErrUnavailable (5xx and transport
// failures) or ErrUnexpected with errors.Is.
package client
