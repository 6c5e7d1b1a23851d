package models

import "time"

// PaymentLog is an append-only audit row for a gateway interaction.
type PaymentLog struct {
	ID        string                 `bson:"id" json:"id"`
	BookingID string                 `bson:"booking_id" json:"bookingId"`
	EventType string                 `bson:"event_type" json:"eventType"`
	EventData map[string]interface{} `bson:"event_data" json:"eventData"`
	CreatedAt time.Time              `bson:"created_at" json:"createdAt"`
}

// Payment log event types written by the service layer. Webhook rows use the gateway's event type.
const (
	LogPaymentCreated       = "payment_created"
	LogPaymentCreationError = "payment_creation_failed"
	LogStatusVerified       = "status_verified"
	LogHandoffSubmitted     = "handoff_submitted"
)
