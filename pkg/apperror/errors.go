package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrBadRequest    = errors.New("bad request")
	ErrConflict      = errors.New("already exists")
	ErrInternal      = errors.New("internal server error")
	ErrInvalidInput  = errors.New("invalid input")
	ErrMisconfigured = errors.New("server configuration error")
	ErrRateLimited   = errors.New("rate limit exceeded")
)

// AppError carries the wire shape of an error response: a short error
// string, an optional human-readable message and an optional list of the
// offending fields.
type AppError struct {
	Code    int
	Short   string
	Message string
	Fields  []string
	Err     error
}

func (e *AppError) Error() string {
	if e.Short != "" {
		return e.Short
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError wrapping one of the sentinel errors above.
func New(code int, short, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Short:   short,
		Message: message,
		Err:     err,
	}
}

// Validation builds a 400 with the machine-readable field list.
func Validation(short, message string, fields ...string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Short:   short,
		Message: message,
		Fields:  fields,
		Err:     ErrInvalidInput,
	}
}

// MapErrorToStatus maps sentinel errors to HTTP status codes. Duplicate
// email/username is reported as 400, not 409.
func MapErrorToStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrConflict) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrRateLimited) {
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}
