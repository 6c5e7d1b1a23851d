package booking

import (
	"errors"
	"fmt"
	"strings"

	"digibook/models"
	"digibook/services/pricing"
	"digibook/services/wizard"
)

// ReviewItem is one labelled line of the review screen.
type ReviewItem struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Review is the read-only summary shown on the last wizard step.
type Review struct {
	Service     string                  `json:"service"`
	ServiceName string                  `json:"serviceName"`
	Details     []ReviewItem            `json:"details"`
	ShowFiles   bool                    `json:"showFiles"`
	Files       []models.FileDescriptor `json:"files,omitempty"`
	Contact     models.ContactInfo      `json:"contact"`
	Quote       *pricing.Quote          `json:"quote,omitempty"`
}

// BuildReview projects the record into the review summary. Empty details are left out.
func (s *DefaultBookingService) BuildReview(record *wizard.Record) *Review {
	r := &Review{
		Service:     record.Service,
		ServiceName: wizard.DisplayName(record.Service),
		Details:     []ReviewItem{},
		ShowFiles:   wizard.ShowsFilesInReview(record.Service),
		Contact:     record.ContactInfo,
	}
	for _, field := range wizard.Fields(record.Service) {
		value := strings.TrimSpace(record.ServiceDetails[field])
		if value == "" {
			continue
		}
		r.Details = append(r.Details, ReviewItem{Field: field, Label: wizard.FieldLabel(field), Value: value})
	}
	if r.ShowFiles {
		r.Files = append([]models.FileDescriptor{}, record.Files...)
	}

	quote, err := pricing.ForRecord(record)
	switch {
	case err == nil:
		quote.Currency = s.currency()
		r.Quote = quote
	case !errors.Is(err, pricing.ErrNoPrice):
		s.logger().Sugar().Warnf("BuildReview: unexpected pricing error: %v", err)
	}
	return r
}

// Summary renders the review as plain text for messaging apps and email.
func (r *Review) Summary(bookingID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Service: %s\n", r.ServiceName)
	for _, item := range r.Details {
		fmt.Fprintf(&b, "%s: %s\n", item.Label, item.Value)
	}
	if r.ShowFiles && len(r.Files) > 0 {
		fmt.Fprintf(&b, "Files: %d attached\n", len(r.Files))
	}
	fmt.Fprintf(&b, "Name: %s\n", r.Contact.Name)
	fmt.Fprintf(&b, "Phone: %s\n", r.Contact.Phone)
	if r.Contact.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", r.Contact.Email)
	}
	fmt.Fprintf(&b, "Preferred contact: %s\n", r.Contact.PreferredContact)
	if r.Quote != nil {
		fmt.Fprintf(&b, "Estimate: %d %s\n", r.Quote.Price, r.Quote.Currency)
	}
	if bookingID != "" {
		fmt.Fprintf(&b, "Reference: %s", bookingID)
	}
	return strings.TrimRight(b.String(), "\n")
}
