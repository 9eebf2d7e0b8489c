package llm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrBlocked is returned when the provider refuses a prompt on safety grounds.
var ErrBlocked = errors.New("prompt blocked by safety filters")

// APIError carries the provider name and, when known, the HTTP status of a failed call.
type APIError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status attached to err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func wrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{Provider: provider, StatusCode: statusOf(err), Err: err}
}

func statusOf(err error) int {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code
	}

	var oaAPIErr *openai.APIError
	if errors.As(err, &oaAPIErr) {
		return oaAPIErr.HTTPStatusCode
	}
	var oaReqErr *openai.RequestError
	if errors.As(err, &oaReqErr) {
		return oaReqErr.HTTPStatusCode
	}

	var anReqErr *anthropic.RequestError
	if errors.As(err, &anReqErr) {
		return anReqErr.StatusCode
	}

	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.ResourceExhausted:
			return http.StatusTooManyRequests
		case codes.Unavailable:
			return http.StatusServiceUnavailable
		case codes.Unauthenticated:
			return http.StatusUnauthorized
		case codes.PermissionDenied:
			return http.StatusForbidden
		case codes.InvalidArgument:
			return http.StatusBadRequest
		}
	}
	return 0
}
