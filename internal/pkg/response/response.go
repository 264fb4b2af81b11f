package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Can't change response at this point, just log
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// Error writes the error envelope with the status implied by code.
// The request id is taken from the chi RequestID middleware.
func Error(w http.ResponseWriter, r *http.Request, code entity.ErrorCode, message string) {
	JSON(w, code.HTTPStatus(), entity.ErrorResponse{
		Error: entity.ErrorBody{
			Code:      code,
			Message:   message,
			RequestID: chimiddleware.GetReqID(r.Context()),
		},
	})
}

// RateLimited writes a 429 with Retry-After in whole seconds.
func RateLimited(w http.ResponseWriter, r *http.Request, retryAfterSeconds int) {
	if retryAfterSeconds < 1 {
		retryAfterSeconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	Error(w, r, entity.CodeRateLimited, "Too many requests. Please try again later.")
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// InvalidJSONMessage replaces decoder errors, which name Go types and fields.
const InvalidJSONMessage = "Invalid JSON body"

// DomainError writes the envelope for a use case error. Validation and access
// errors carry their own message; undecodable bodies and internal errors get a
// fixed one so decoder and provider text never reach the caller.
func DomainError(w http.ResponseWriter, r *http.Request, err error, internalMessage string) {
	code := entity.CodeFor(err)
	var message string
	switch code {
	case entity.CodeInternalError:
		message = internalMessage
	case entity.CodeInvalidJSON:
		message = InvalidJSONMessage
	default:
		message = err.Error()
	}
	Error(w, r, code, message)
}
