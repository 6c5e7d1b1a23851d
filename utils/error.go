package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every API error.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler turns a panic in a handler into a 500 with the standard error body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError writes {message, details}. Server-side failures are logged at error level.
func JSONError(c *gin.Context, status int, message string, details string) {
	fields := []zap.Field{zap.Int("status", status), zap.String("details", details)}
	if status >= http.StatusInternalServerError {
		GetLogger().Error(message, fields...)
	} else {
		GetLogger().Warn(message, fields...)
	}
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
