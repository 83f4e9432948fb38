package middleware

import (
	"errors"
	"net/http"

	"MenuMate/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware renders the last error pushed with c.Error.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var customErr *utils.CustomError
		if errors.As(err, &customErr) {
			utils.ErrorResponse(c, customErr.StatusCode, customErr.Message)
			return
		}

		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal Server Error")
	}
}
