package authapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error is a structured rejection returned by the identity service: an
// HTTP status and a human-readable message, optionally with a service
// error code. Only anticipated API rejections take this type; transport
// faults and malformed responses surface as ordinary errors so callers
// can tell "service rejected the request" from "infrastructure failure".
type Error struct {
	// Status is the HTTP status (or service-reported code) of the rejection
	Status int

	// Code is the service error code when one is present (e.g. "validation_failed")
	Code string

	// Message is the human-readable description of the rejection
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Code, e.Message, e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// IsError reports whether err (anywhere in its chain) is a structured
// service rejection, and returns it when it is.
func IsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// serviceErrorBody covers the error body shapes the service is known to
// emit. A body is only recognized when it is valid JSON carrying a
// non-empty message under one of these keys.
type serviceErrorBody struct {
	Code             int    `json:"code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorCode        string `json:"error_code"`
	ErrorField       string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// classify maps a non-2xx response to a typed *Error when the body
// matches a recognized service error shape. Everything else comes back
// as a plain error and must propagate unchanged; unexpected failures are
// never folded into the typed channel.
func classify(status int, body []byte) error {
	var parsed serviceErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Msg != "":
			st := status
			if parsed.Code != 0 {
				st = parsed.Code
			}
			return &Error{Status: st, Code: parsed.ErrorCode, Message: parsed.Msg}
		case parsed.Message != "":
			return &Error{Status: status, Code: parsed.ErrorCode, Message: parsed.Message}
		case parsed.ErrorField != "":
			return &Error{Status: status, Code: parsed.ErrorField, Message: parsed.ErrorDescription}
		}
	}

	return fmt.Errorf("request failed with status %d: %s", status, string(body))
}
