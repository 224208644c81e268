package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("User not found")
	// ErrPostNotFound is returned when a post is missing or hidden from the caller.
	ErrPostNotFound = errors.New("Post not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("Comment not found")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("Email already in use")
	// ErrInvalidCredentials is returned when login email or password is wrong.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrForbidden is returned when the caller lacks the role or ownership required.
	ErrForbidden = errors.New("Forbidden")
	// ErrUnauthenticated is returned when no valid principal backs the request.
	ErrUnauthenticated = errors.New("Unauthenticated")
	// ErrTitleContentRequired is returned when a post is created without title or content.
	ErrTitleContentRequired = errors.New("Title and content are required")
)

// ErrorResponse is the uniform error body: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError pairs an HTTP status with a caller-safe message.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// ToErrorResponse converts an HTTPError to the JSON body shape.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized
// collapses to a generic 500; the underlying error is for the server log only.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrTitleContentRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
