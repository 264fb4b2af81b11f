package entity

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	// Request errors
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrValidation    = errors.New("validation failed")
	ErrInvalidJSON   = errors.New("invalid json body")
	ErrNotFound      = errors.New("resource not found")
	ErrMissingField  = errors.New("required field is missing")
	ErrInvalidFormat = errors.New("invalid format")

	// Library errors
	ErrHighlightLimit   = errors.New("highlight limit reached")
	ErrContentNotFound  = errors.New("content item not found")
	ErrHighlightMissing = errors.New("highlight not found")

	// Provider errors
	ErrProviderNotConfigured = errors.New("provider is not configured")
	ErrEmbeddingFailed       = errors.New("embedding request failed")
	ErrInvalidEmbedding      = errors.New("invalid embedding response")
	ErrSearchFailed          = errors.New("vector search failed")
	ErrSectionsUnavailable   = errors.New("content sections unavailable")
	ErrGenerationFailed      = errors.New("completion request failed")
	ErrRecommendationFailed  = errors.New("recommendation lookup failed")
)

// ErrorCode is the machine-readable code carried in every error envelope.
type ErrorCode string

const (
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeInvalidJSON     ErrorCode = "INVALID_JSON"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeRateLimited     ErrorCode = "RATE_LIMITED"
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"
)

// HTTPStatus maps the code to the status the API answers with.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeValidationError, CodeInvalidJSON:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// CodeFor classifies a domain error. Anything unknown is an internal error.
func CodeFor(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrHighlightLimit):
		return CodeForbidden
	case errors.Is(err, ErrInvalidJSON):
		return CodeInvalidJSON
	case errors.Is(err, ErrValidation), errors.Is(err, ErrMissingField), errors.Is(err, ErrInvalidFormat):
		return CodeValidationError
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrContentNotFound), errors.Is(err, ErrHighlightMissing):
		return CodeNotFound
	default:
		return CodeInternalError
	}
}

// ErrorBody is the inner object of the error envelope.
type ErrorBody struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

// ErrorResponse is the JSON envelope written on every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
