package backoffice

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Display-ready messages keyed by status code. The backend's own message field
// wins when present; these are the fallbacks.
const (
	msgInvalidInput = "Invalid input. Please verify the submitted data."
	msgUnauthorized = "Unauthorized. Please sign in again."
	msgForbidden    = "Access denied."
	msgNotFound     = "Resource not found."
	msgConflict     = "Conflict. The resource already exists."
	msgServerError  = "Server error. Please try again later."
	msgUnexpected   = "An unexpected error occurred."
	msgConnectivity = "Connection error. Check your network."
)

// APIError is the single error shape surfaced by every client method. Error()
// returns a translated, display-ready message; callers are expected to show it
// rather than inspect transport details.
type APIError struct {
	// Status is the HTTP status code, or 0 when no response was received.
	Status  int
	Message string
	// Err is the underlying transport error, when there is one.
	Err error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is an APIError for a missing record.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is an APIError for a denied credential.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// errorBody is the error envelope sent by the backend: message may be a single
// string or a list of validation messages.
type errorBody struct {
	StatusCode int             `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
	ErrorLabel string          `json:"error"`
}

// translateError maps an HTTP failure to a display-ready message, preferring
// the structured body message (first entry when it is a list) over the canned
// status-code text.
func translateError(status int, body []byte) *APIError {
	if msg := bodyMessage(body); msg != "" {
		return &APIError{Status: status, Message: msg}
	}

	return &APIError{Status: status, Message: statusMessage(status)}
}

// connectivityError wraps a transport failure where no response arrived at
// all, including timeouts.
func connectivityError(err error) *APIError {
	return &APIError{Message: msgConnectivity, Err: err}
}

func bodyMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Message) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(eb.Message, &single); err == nil {
		return single
	}

	var many []string
	if err := json.Unmarshal(eb.Message, &many); err == nil && len(many) > 0 {
		return many[0]
	}

	return ""
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return msgInvalidInput
	case http.StatusUnauthorized:
		return msgUnauthorized
	case http.StatusForbidden:
		return msgForbidden
	case http.StatusNotFound:
		return msgNotFound
	case http.StatusConflict:
		return msgConflict
	case http.StatusInternalServerError:
		return msgServerError
	default:
		return msgUnexpected
	}
}
