package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// DefaultErrorMessage is shown when an error carries nothing displayable
const DefaultErrorMessage = "Terjadi kesalahan pada server"

// Kind classifies a failed call
type Kind int

const (
	// KindNetwork: the request never got a response (DNS, refused, timeout)
	KindNetwork Kind = iota
	// KindClient: 4xx
	KindClient
	// KindServer: 5xx and anything else outside 2xx
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindClient:
		return "client"
	default:
		return "server"
	}
}

// APIError is returned for every failed call to the remote API
type APIError struct {
	Kind   Kind
	Status int
	Method string
	Path   string
	// ErrorText and Message are the "error" and "message" fields of the body, if any
	ErrorText string
	Message   string
	Err       error
}

func (e *APIError) Error() string {
	switch {
	case e.Kind == KindNetwork:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	case e.ErrorText != "":
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.ErrorText)
	case e.Message != "":
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error { return e.Err }

func newStatusError(method, path string, status int, body []byte) *APIError {
	e := &APIError{Kind: KindServer, Status: status, Method: method, Path: path}
	if status >= 400 && status < 500 {
		e.Kind = KindClient
	}

	var fields map[string]any
	if json.Unmarshal(body, &fields) == nil {
		if s, ok := fields["error"].(string); ok {
			e.ErrorText = s
		}
		if s, ok := fields["message"].(string); ok {
			e.Message = s
		}
	}
	return e
}

// ErrorMessage picks the text to show a user for err: the API's "error"
// field, then its "message" field, then DefaultErrorMessage
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.ErrorText != "" {
			return apiErr.ErrorText
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return DefaultErrorMessage
}

func kindOf(err error) (Kind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsNetworkError reports whether the request never reached the server
func IsNetworkError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindNetwork
}

// IsClientError reports a 4xx response
func IsClientError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindClient
}

// IsServerError reports a 5xx response
func IsServerError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindServer
}

// StatusCode returns the HTTP status of a failed call, 0 if there was none
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports a 404 response
func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }

// IsUnauthorized reports a 401 response
func IsUnauthorized(err error) bool { return StatusCode(err) == http.StatusUnauthorized }
