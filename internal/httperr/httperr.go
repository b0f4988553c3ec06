package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond maps a business error kind to its HTTP status. Anything
// that is not a BusinessError is an internal error.
func Respond(c *gin.Context, err error) {
	switch KindOf(err) {
	case KindValidation:
		Write(c, http.StatusBadRequest, err.Error(), "Invalid request.")
	case KindCapacity:
		Write(c, http.StatusUnprocessableEntity, err.Error(), "Not enough capacity.")
	case KindConflict:
		Write(c, http.StatusConflict, err.Error(), "Operation conflicts with current state.")
	case KindNotFound:
		Write(c, http.StatusNotFound, err.Error(), "Resource not found.")
	default:
		Write(c, http.StatusInternalServerError, "internal_error", "Something went wrong.")
	}
}
