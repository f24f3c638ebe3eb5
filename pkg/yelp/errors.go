package yelp

import (
	"encoding/json"
	"fmt"
)

// apiErrorResponse is the Fusion error envelope, returned by both the token
// endpoint and the data endpoints.
type apiErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// AuthError is returned when the OAuth token exchange fails, either with a
// non-success status or a body that does not decode as a token grant. The
// pending query is aborted; no retry is attempted.
type AuthError struct {
	StatusCode  int
	Code        string
	Description string
	Err         error
}

func (e *AuthError) Error() string {
	msg := fmt.Sprintf("token exchange failed (status %d)", e.StatusCode)
	if e.Code != "" {
		msg += fmt.Sprintf(": %s - %s", e.Code, e.Description)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError is returned when a data query receives a non-success HTTP
// status. Code and Description carry the API's error payload when one was
// present.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("fusion API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf(
		"fusion API error (status %d): %s - %s",
		e.StatusCode, e.Code, e.Description,
	)
}

// newAPIError builds an APIError from a non-success response body,
// extracting the error envelope when the body carries one.
func newAPIError(status int, body []byte) *APIError {
	var payload apiErrorResponse
	_ = json.Unmarshal(body, &payload) //nolint:errcheck // best-effort error parsing
	return &APIError{
		StatusCode:  status,
		Code:        payload.Error.Code,
		Description: payload.Error.Description,
	}
}

// DecodeError is returned when a response body does not decode as the
// expected JSON shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("parsing %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
