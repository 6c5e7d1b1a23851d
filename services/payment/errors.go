package payment

import (
	"errors"
	"fmt"
)

var (
	ErrIncompleteBooking = errors.New("booking is incomplete")
	ErrMalformedWebhook  = errors.New("malformed webhook payload")
)

// GatewayError is a failed call to a payment provider.
type GatewayError struct {
	Gateway    string
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s gateway error (status %d): %s", e.Gateway, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s gateway error: %s", e.Gateway, e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// WebhookSignatureError means a webhook could not be authenticated.
type WebhookSignatureError struct {
	Gateway string
	Reason  string
}

func (e *WebhookSignatureError) Error() string {
	return fmt.Sprintf("%s webhook signature rejected: %s", e.Gateway, e.Reason)
}

// PersistenceError wraps a booking store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
