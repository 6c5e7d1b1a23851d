package handlers

import (
	"digibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request-scoped logger set by the routes middleware, tagged with the matched route.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger()
	if l, exists := c.Get("logger"); exists {
		if scoped, ok := l.(*zap.Logger); ok && scoped != nil {
			logger = scoped
		}
	}
	if route := c.FullPath(); route != "" {
		logger = logger.With(zap.String("route", route))
	}
	if id := c.Param("id"); id != "" {
		logger = logger.With(zap.String("id", id))
	}
	return logger
}
