package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error payload shape every failure renders:
// Errors carries field-level validation details when present.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Errors     any    `json:"errors,omitempty"`
}

// OK writes data as-is with the given status.
func OK(c *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, data)
}

// Message writes a one-line confirmation body.
func Message(c *gin.Context, status int, msg string) {
	OK(c, status, gin.H{"message": msg})
}

// Error writes an ErrorBody and aborts the request.
func Error(c *gin.Context, status int, message string, errs any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, ErrorBody{
		StatusCode: status,
		Message:    message,
		Errors:     errs,
	})
}
