package handlers

import (
	"errors"
	"net/http"

	"digibook/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Review handles GET /api/wizard/sessions/:id/review.
func (h *WizardHandler) Review(c *gin.Context) {
	sessionID := c.Param("id")
	ctrl, err := h.Sessions.Load(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"complete":  ctrl.Complete(),
		"review":    h.BookingSvc.BuildReview(ctrl.Record()),
	})
}

// Checkout handles POST /api/wizard/sessions/:id/checkout.
func (h *WizardHandler) Checkout(c *gin.Context) {
	logger := getLogger(c)
	sessionID := c.Param("id")

	ctrl, err := h.Sessions.Load(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if errs := ctrl.ValidateAll(); !errs.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking is incomplete", "errors": errs})
		return
	}

	result, err := h.PaymentSvc.CreateCheckout(c.Request.Context(), ctrl.Record())
	if err != nil {
		var gwErr *payment.GatewayError
		if errors.As(err, &gwErr) {
			// The session stays on review so the customer can retry or hand off.
			logger.Warn("Checkout unavailable, offering messaging handoff", zap.String("sessionID", sessionID), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"message":          "Payment provider unavailable",
				"details":          gwErr.Error(),
				"handoffAvailable": true,
			})
			return
		}
		respondError(c, err)
		return
	}

	if err := h.Sessions.Discard(c.Request.Context(), sessionID); err != nil {
		logger.Warn("Failed to discard wizard draft after checkout", zap.String("sessionID", sessionID), zap.Error(err))
	}
	c.JSON(http.StatusOK, result)
}

// Handoff handles POST /api/wizard/sessions/:id/handoff.
func (h *WizardHandler) Handoff(c *gin.Context) {
	logger := getLogger(c)
	sessionID := c.Param("id")

	ctrl, err := h.Sessions.Load(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if errs := ctrl.ValidateAll(); !errs.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking is incomplete", "errors": errs})
		return
	}

	result, err := h.BookingSvc.SubmitHandoff(c.Request.Context(), ctrl.Record())
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Sessions.Discard(c.Request.Context(), sessionID); err != nil {
		logger.Warn("Failed to discard wizard draft after handoff", zap.String("sessionID", sessionID), zap.Error(err))
	}
	c.JSON(http.StatusOK, result)
}
