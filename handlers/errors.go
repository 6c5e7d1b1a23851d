package handlers

import (
	"errors"
	"net/http"

	bookingRepo "digibook/database/repository/booking"
	"digibook/models"
	"digibook/services/booking"
	"digibook/services/payment"
	"digibook/services/pricing"
	"digibook/services/wizard"
	"digibook/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto the {message, details} envelope.
func respondError(c *gin.Context, err error) {
	var (
		fieldErr *wizard.FieldError
		sigErr   *payment.WebhookSignatureError
		gwErr    *payment.GatewayError
		persErr  *payment.PersistenceError
	)

	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Session not found or expired", err.Error())
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", err.Error())
	case errors.As(err, &sigErr):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid webhook signature", sigErr.Reason)
	case errors.As(err, &fieldErr),
		errors.Is(err, wizard.ErrUnknownService),
		errors.Is(err, wizard.ErrNoService),
		errors.Is(err, wizard.ErrInvalidChannel):
		utils.JSONError(c, http.StatusBadRequest, "Invalid wizard input", err.Error())
	case errors.Is(err, payment.ErrMalformedWebhook):
		utils.JSONError(c, http.StatusBadRequest, "Malformed webhook payload", err.Error())
	case errors.Is(err, pricing.ErrNoPrice):
		utils.JSONError(c, http.StatusBadRequest, "No price available for the selected options", err.Error())
	case errors.Is(err, payment.ErrIncompleteBooking),
		errors.Is(err, booking.ErrIncompleteHandoff):
		utils.JSONError(c, http.StatusBadRequest, "Booking is incomplete", err.Error())
	case errors.Is(err, models.ErrInvalidStatus):
		utils.JSONError(c, http.StatusBadRequest, "Invalid status filter", err.Error())
	case errors.As(err, &gwErr):
		utils.JSONError(c, http.StatusServiceUnavailable, "Payment provider unavailable", gwErr.Error())
	case errors.As(err, &persErr):
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save booking", persErr.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
