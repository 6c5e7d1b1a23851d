package models

import (
	"errors"
	"time"
)

var ErrInvalidStatus = errors.New("invalid booking status")

// Booking statuses.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Booking channels.
const (
	ChannelGateway   = "gateway"
	ChannelMessaging = "messaging"
)

// ContactInfo is how the customer wants to be reached.
type ContactInfo struct {
	Name             string `bson:"name" json:"name"`
	Phone            string `bson:"phone" json:"phone"`
	Email            string `bson:"email" json:"email"`
	PreferredContact string `bson:"preferred_contact" json:"preferredContact"` // "whatsapp", "email" or "phone"
}

// FileDescriptor describes an accepted upload attached to a booking.
type FileDescriptor struct {
	ID            string `bson:"id" json:"id"`
	Name          string `bson:"name" json:"name"`
	Size          int64  `bson:"size" json:"size"`
	Type          string `bson:"type" json:"type"`
	URL           string `bson:"url" json:"url"`
	IsTransparent *bool  `bson:"is_transparent,omitempty" json:"isTransparent,omitempty"`
}

// Booking is the persisted outcome of a submitted wizard.
type Booking struct {
	ID               string            `bson:"id" json:"id"`
	Service          string            `bson:"service" json:"service"`
	ServiceDetails   map[string]string `bson:"service_details" json:"serviceDetails"`
	ContactInfo      ContactInfo       `bson:"contact_info" json:"contactInfo"`
	Files            []FileDescriptor  `bson:"files" json:"files"`
	AmountMinorUnits int64             `bson:"amount" json:"amountMinorUnits"`
	Currency         string            `bson:"currency" json:"currency"`
	Status           string            `bson:"status" json:"status"`
	Channel          string            `bson:"channel" json:"channel"`
	Gateway          string            `bson:"gateway,omitempty" json:"gateway,omitempty"`
	GatewayPaymentID string            `bson:"gateway_payment_id,omitempty" json:"gatewayPaymentId,omitempty"`
	CheckoutURL      string            `bson:"checkout_url,omitempty" json:"checkoutUrl,omitempty"`
	CreatedAt        time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updated_at" json:"updatedAt"`
}

// IsValidStatus reports whether s is one of the booking statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusCancelled:
		return true
	}
	return false
}
