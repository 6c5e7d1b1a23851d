package payment

import (
	"context"
	"net/http"
)

// PaymentStatus is the gateway-side state of a checkout.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Normalized webhook event types.
const (
	EventSucceeded = "payment.succeeded"
	EventCompleted = "payment.completed"
	EventFailed    = "payment.failed"
	EventCancelled = "payment.cancelled"
	EventPending   = "payment.pending"
)

// CheckoutParams describes a hosted checkout for a single booking.
type CheckoutParams struct {
	AmountMinorUnits int64
	Currency         string
	CustomerEmail    string
	Description      string
	SuccessURL       string
	CancelURL        string
	Metadata         map[string]string
}

// Checkout is a created hosted checkout.
type Checkout struct {
	PaymentID   string
	CheckoutURL string
}

// WebhookData is the payment object carried by a webhook.
type WebhookData struct {
	ID       string
	Status   string
	Metadata map[string]string
	Amount   int64
	Currency string
}

// WebhookEvent is a verified, gateway-neutral webhook. Ignored events are acknowledged without processing.
type WebhookEvent struct {
	Type    string
	Data    WebhookData
	Raw     map[string]interface{}
	Ignored bool
}

// Gateway is a hosted-checkout payment provider.
type Gateway interface {
	Name() string
	CreateCheckout(ctx context.Context, params CheckoutParams) (*Checkout, error)
	RetrieveStatus(ctx context.Context, paymentID string) (PaymentStatus, error)
	// ParseWebhook verifies the request signature before decoding anything.
	ParseWebhook(payload []byte, header http.Header) (*WebhookEvent, error)
}
