package httperr

import (
	"log/slog"
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

// Abort writes the error and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
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

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

var statusByCode = map[string]int{
	CodeInvalidRequest:     http.StatusBadRequest,
	CodeServiceNotFound:    http.StatusBadRequest,
	CodeShopNotFound:       http.StatusBadRequest,
	CodeInvalidEmailDomain: http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeUserNotFound:       http.StatusNotFound,
	CodeUserAlreadyExists:  http.StatusConflict,
}

var messageByCode = map[string]string{
	CodeInvalidRequest:     "Missing or invalid fields.",
	CodeServiceNotFound:    "One or more services not found.",
	CodeShopNotFound:       "Shop must be created first.",
	CodeInvalidEmailDomain: "The email domain does not look valid.",
	CodeUnauthorized:       "Unauthorized.",
	CodeInvalidCredentials: "Invalid credentials.",
	CodeForbidden:          "Admin access required.",
	CodeNotFound:           "Resource not found.",
	CodeUserNotFound:       "User not found.",
	CodeUserAlreadyExists:  "User already exists.",
}

// Respond converts err into a JSON error body. Business errors keep their
// code; anything else is logged under op and answered with a generic 500.
func Respond(c *gin.Context, op string, err error) {
	if be, ok := AsBusiness(err); ok {
		if status, known := statusByCode[be.Code]; known {
			msg := messageByCode[be.Code]
			if be.Detail != "" {
				msg = be.Detail
			}
			Write(c, status, be.Code, msg)
			return
		}
	}

	slog.ErrorContext(c.Request.Context(), "request failed",
		"op", op,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"err", err,
	)
	Internal(c, CodeInternal, "Internal server error.")
}
