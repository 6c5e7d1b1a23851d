package payment

import "digibook/models"

// bookingStatusForPayment maps a gateway status onto the booking status, keeping current when unknown.
func bookingStatusForPayment(s PaymentStatus, current string) string {
	switch s {
	case PaymentSucceeded:
		return models.StatusPaid
	case PaymentFailed:
		return models.StatusFailed
	case PaymentCancelled:
		return models.StatusCancelled
	case PaymentPending:
		return models.StatusPending
	}
	return current
}

// bookingStatusForEvent maps a normalized webhook type onto the booking status.
func bookingStatusForEvent(eventType, current string) string {
	switch eventType {
	case EventSucceeded, EventCompleted:
		return models.StatusPaid
	case EventFailed:
		return models.StatusFailed
	case EventCancelled:
		return models.StatusCancelled
	case EventPending:
		return models.StatusPending
	}
	return current
}
