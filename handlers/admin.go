// File: digibook/handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"

	bookingRepo "digibook/database/repository/booking"
	"digibook/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	BookingSvc booking.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bs booking.BookingService) *AdminHandler {
	return &AdminHandler{BookingSvc: bs}
}

// ListBookingsHandler returns bookings filtered by ?status=, ?service= and ?limit=.
func (ah *AdminHandler) ListBookingsHandler(c *gin.Context) {
	filter := bookingRepo.ListFilter{
		Status:  c.Query("status"),
		Service: c.Query("service"),
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.Limit = n
		}
	}

	bookings, err := ah.BookingSvc.ListBookings(c.Request.Context(), filter)
	if err != nil {
		getLogger(c).Error("Failed to list bookings", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingHandler returns one booking with its payment log.
func (ah *AdminHandler) GetBookingHandler(c *gin.Context) {
	detail, err := ah.BookingSvc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
