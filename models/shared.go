package models

// HandoffPayload is the queued notification for a booking submitted over messaging.
type HandoffPayload struct {
	BookingID    string `json:"bookingId"`
	Service      string `json:"service"`
	CustomerName string `json:"customerName"`
	Channel      string `json:"channel"`
	Summary      string `json:"summary"`
	Link         string `json:"link"`
}
