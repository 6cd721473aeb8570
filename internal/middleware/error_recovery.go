// Package middleware provides HTTP middleware shared by the API routes.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	contextutils "aitutor/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorRecoveryMiddleware recovers from handler panics and responds with the
// gateway's flat error shape instead of killing the connection.
func ErrorRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stackTrace := string(debug.Stack())
				fmt.Printf("Panic recovered: %v\nStack trace: %s\n", r, stackTrace)

				// Convert panic value to error if needed
				var panicErr error
				if e, ok := r.(error); ok {
					panicErr = e
				} else {
					panicErr = contextutils.ErrorWithContextf("panic: %v", r)
				}

				appErr := contextutils.NewAppErrorWithCause(
					contextutils.ErrorCodeInternalError,
					contextutils.SeverityFatal,
					"Internal server error",
					"A panic occurred while processing the request",
					panicErr,
				)

				_ = c.Error(appErr)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": appErr.Message})
			}
		}()

		c.Next()
	}
}
