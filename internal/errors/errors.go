package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no user matches a lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailAlreadyExists is returned when a user with the same email is already stored.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrInvalidInput is returned when a request payload is incomplete or malformed.
	ErrInvalidInput = errors.New("invalid input")
)

// DomainError pairs an error kind with a message meant for API clients.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the kind so callers can use errors.Is.
func (e *DomainError) Unwrap() error {
	return e.Kind
}

// UserNotFoundByID reports a missing user id.
func UserNotFoundByID(id int64) error {
	return &DomainError{Kind: ErrUserNotFound, Message: fmt.Sprintf("user with id %d not found", id)}
}

// UserNotFoundByEmail reports a missing user email.
func UserNotFoundByEmail(email string) error {
	return &DomainError{Kind: ErrUserNotFound, Message: fmt.Sprintf("user with email %s not found", email)}
}

// EmailAlreadyExists reports a duplicate email.
func EmailAlreadyExists(email string) error {
	return &DomainError{Kind: ErrEmailAlreadyExists, Message: fmt.Sprintf("user with email %s already exists", email)}
}

// InvalidInput reports a rejected payload.
func InvalidInput(message string) error {
	return &DomainError{Kind: ErrInvalidInput, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
