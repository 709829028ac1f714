package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthvault/health-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents an API error body
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondWithSuccess sends a 200 success envelope
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// RespondWithCreated sends a 201 success envelope
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// RespondWithError maps an error to its HTTP status and envelope
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	code := int(errors.CodeInternal)

	if appErr, ok := errors.AsAppError(err); ok {
		status = appErr.HTTPStatus()
		message = appErr.Message
		code = int(appErr.Code)
	}

	c.JSON(status, Response{
		Success: false,
		Error:   &Error{Code: code, Message: message},
	})
}

// RespondWithValidationError sends a 400 with the binding error detail
func RespondWithValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   &Error{Code: int(errors.CodeBadRequest), Message: err.Error()},
	})
}
