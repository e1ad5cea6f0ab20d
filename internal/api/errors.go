package api

import (
	"errors"
	"fmt"
)

// Error is the single failure type returned by the client. Callers only need
// Message; Status and Code are kept for logging.
type Error struct {
	Status  int // HTTP status, zero when the request never completed
	Code    int // envelope code, zero for HTTP-level failures
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Message extracts the human-readable text of any error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func statusError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("Server Error: %d", status)
	}
	return &Error{Status: status, Message: message}
}

func appError(status, code int, message string) *Error {
	if message == "" {
		message = "API Error"
	}
	return &Error{Status: status, Code: code, Message: message}
}

func transportError(err error) *Error {
	return &Error{Message: err.Error(), Err: err}
}
