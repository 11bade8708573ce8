package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dityaaw/user-service/pkg/validation"
)

// ErrorTranslator renders errors that escape handlers. Validation
// failures become the 400 body clients expect: the field-level detail
// list, or the raw issue set when only whole-object issues remain.
func ErrorTranslator(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			body := gin.H{
				"message":    "Validation failed",
				"statusCode": http.StatusBadRequest,
			}
			if len(verr.Details) > 0 {
				body["errors"] = verr.Details
			} else {
				body["errors"] = verr.Issues
			}
			c.JSON(http.StatusBadRequest, body)
		case errors.Is(err, validation.ErrNoData):
			c.JSON(http.StatusBadRequest, gin.H{
				"message":    err.Error(),
				"statusCode": http.StatusBadRequest,
			})
		default:
			logger.WithError(err).Error("unhandled request error")
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":    "Internal server error",
				"statusCode": http.StatusInternalServerError,
			})
		}
	}
}
