package handlers

import (
	"net/http"

	"digibook/services/booking"

	"github.com/gin-gonic/gin"
)

// ServicesHandler serves the public service catalogue.
type ServicesHandler struct {
	BookingSvc booking.BookingService
}

// GetAvailableServices handles GET /api/services.
func (h *ServicesHandler) GetAvailableServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.BookingSvc.GetAvailableServices())
}
