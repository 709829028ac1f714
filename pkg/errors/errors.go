package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique application error code
type ErrorCode int

const (
	CodeNotFound ErrorCode = iota + 1000
	CodeBadRequest
	CodeUnauthorized
	CodeForbidden
	CodeConflict
	CodeInternal
)

// AppError is the error type surfaced at the HTTP boundary.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the application code to a transport status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{Code: CodeBadRequest, Message: message, Err: err}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

func Internal(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "internal server error", Err: err}
}

// AsAppError unwraps err to an *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
