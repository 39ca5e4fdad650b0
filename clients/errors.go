package clients

import (
	"errors"
	"fmt"
)

// ErrCredentialRejected signals the API refused the stored credential.
// The caller decides the reaction (session clear, login redirect); the
// transport layer only reports it.
var ErrCredentialRejected = errors.New("credential rejected by API")

// RequestError means the request never reached the API or never returned.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx API response, carrying the API's own error
// message when one was provided.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api returned %d", e.Code)
}
