package handlers

import (
	"io"
	"net/http"

	"digibook/services/payment"
	"digibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxWebhookBytes = 1 << 20

// PaymentHandler serves payment verification and gateway callbacks.
type PaymentHandler struct {
	PaymentSvc payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{PaymentSvc: svc}
}

// VerifyPayment handles POST /api/payments/verify.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var body struct {
		BookingID string `json:"booking_id"`
	}
	_ = c.ShouldBindJSON(&body)
	if body.BookingID == "" {
		body.BookingID = c.Query("booking_id")
	}
	if body.BookingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing booking_id", "provide booking_id in the body or query")
		return
	}

	result, err := h.PaymentSvc.VerifyPayment(c.Request.Context(), body.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Webhook handles POST /api/payments/webhook. The raw body is verified before anything is decoded.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	logger := getLogger(c)

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read webhook body", err.Error())
		return
	}

	result, err := h.PaymentSvc.HandleWebhook(c.Request.Context(), payload, c.Request.Header)
	if err != nil {
		logger.Warn("Webhook rejected", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "result": result})
}
