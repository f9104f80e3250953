package cinesdk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/OlleroRaul/proyecto-final-cine/pkg/httpx"
)

// Error codes used by the cine API. Stable identifiers for clients to
// branch on; the message is for humans.
const (
	ErrorCodeInvalidRequest  = "invalid_request"
	ErrorCodeValidationError = "validation_error"
	ErrorCodeUnauthorized    = "unauthorized"
	ErrorCodeForbidden       = "forbidden"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeConflict        = "conflict"
	ErrorCodeServerError     = "server_error"
)

// APIError is the wire shape of every non-2xx response from the service.
// It implements the error interface so the server can write it and the SDK
// client can return it.
type APIError struct {
	// StatusCode is the HTTP status for this error.
	StatusCode int `json:"-"`

	// Code is the stable machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

// Predefined API errors. Handlers return these directly; credential
// failures share one generic message so responses never reveal whether the
// username exists.
var (
	// ErrInvalidRequest is returned for unreadable or non-JSON bodies.
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request body is malformed",
	}

	// ErrInvalidCredentials is returned when signin or a current-password
	// check fails, regardless of the underlying reason.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "invalid credentials",
	}

	// ErrUnauthorized is returned when the bearer token is missing,
	// malformed or expired.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "the access token is missing, invalid or expired",
	}

	// ErrForbidden is returned when the caller is authenticated but does
	// not own the addressed resource.
	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Message:    "you do not have access to this resource",
	}

	// ErrNotFound is returned when the addressed resource does not exist.
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "resource not found",
	}

	// ErrUsernameTaken is returned when signup collides with an existing
	// username.
	ErrUsernameTaken = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeConflict,
		Message:    "username already taken",
	}

	// ErrServerError is the generic 500. Details go to the log, never to
	// the client.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// ValidationError carries per-field validation messages. All violated
// fields are reported in one response.
type ValidationError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// NewValidationError wraps a field->message map in the standard 400 shape.
func NewValidationError(details map[string]string) *ValidationError {
	return &ValidationError{
		Code:    ErrorCodeValidationError,
		Message: "one or more fields failed validation",
		Details: details,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%d fields)", e.Code, e.Message, len(e.Details))
}

// WriteError writes the validation error as a 400 response.
func (e *ValidationError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, e)
}

// parseErrorResponse turns a non-2xx response body into a typed error.
// Validation errors are recognised by their details map; everything else
// becomes an APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var valErr ValidationError
	if err := json.Unmarshal(body, &valErr); err == nil &&
		valErr.Code == ErrorCodeValidationError && len(valErr.Details) > 0 {
		return &valErr
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

// decodeJSON decodes a response into target, or returns the typed error
// for non-expected statuses.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, body)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
