package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/tuitionhub/tuitionhub-web/pkg/errors"
)

// ErrDecode marks a response whose shape does not match the endpoint's DTO
var ErrDecode = errors.New("unexpected response shape")

// Kind is how a failed backend call is presented to the user
type Kind int

const (
	KindUnavailable Kind = iota
	KindUnauthorized
	KindNotFound
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "unavailable"
	}
}

// APIError is a failed backend call. StatusCode is zero when no response
// was received.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Message != "":
		return fmt.Sprintf("%s: backend returned %d: %s", e.Operation, e.StatusCode, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: backend returned %d", e.Operation, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is lets callers match backend failures against the application sentinels
func (e *APIError) Is(target error) bool {
	switch target {
	case apperrors.ErrUnauthorized:
		return e.Kind() == KindUnauthorized
	case apperrors.ErrNotFound:
		return e.Kind() == KindNotFound
	case apperrors.ErrInvalidInput:
		return e.Kind() == KindValidation
	case apperrors.ErrUnavailable:
		return e.Kind() == KindUnavailable
	}
	return false
}

// Kind classifies the failure by status code
func (e *APIError) Kind() Kind {
	switch {
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return KindUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return KindNotFound
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return KindValidation
	default:
		return KindUnavailable
	}
}

// KindOf classifies any error returned by the client. Anything that is not
// an *APIError (breaker open, cancelled context) counts as unavailable.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind()
	}
	return KindUnavailable
}

// MessageOf returns the backend-provided message, if any
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// parseError builds an APIError from a non-2xx response. The backend uses
// either {"message": ...} or {"error": ...}.
func parseError(operation string, statusCode int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	apiErr := &APIError{Operation: operation, StatusCode: statusCode}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
	}
	return apiErr
}

func decodeError(operation string, cause error) error {
	return &APIError{Operation: operation, Err: fmt.Errorf("%w: %v", ErrDecode, cause)}
}
