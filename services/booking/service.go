package booking

import (
	"digibook/models"
	"digibook/services/pricing"
	"digibook/services/wizard"
)

// ServiceOffer is a catalogue entry with its lowest listed price.
type ServiceOffer struct {
	models.ServiceMetadata
	StartingFrom int64  `json:"startingFrom,omitempty"`
	Currency     string `json:"currency"`
}

func (s *DefaultBookingService) currency() string {
	if s.Currency == "" {
		return pricing.DefaultCurrency
	}
	return s.Currency
}

// GetAvailableServices lists the bookable services in display order.
func (s *DefaultBookingService) GetAvailableServices() []ServiceOffer {
	catalogue := wizard.Catalogue()
	out := make([]ServiceOffer, 0, len(catalogue))
	for _, meta := range catalogue {
		offer := ServiceOffer{ServiceMetadata: meta, Currency: s.currency()}
		if price, ok := pricing.StartingPrice(meta.ID); ok {
			offer.StartingFrom = price
		}
		out = append(out, offer)
	}
	return out
}
