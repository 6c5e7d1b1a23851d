package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const gatewayStripe = "stripe"

// StripeGateway creates Checkout Sessions and verifies Stripe webhooks.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway builds a gateway. backends may be nil to use Stripe's default endpoints.
func NewStripeGateway(secretKey, webhookSecret string, backends *stripe.Backends) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, backends)
	return &StripeGateway{api: api, webhookSecret: webhookSecret}
}

func (g *StripeGateway) Name() string { return gatewayStripe }

func (g *StripeGateway) CreateCheckout(ctx context.Context, p CheckoutParams) (*Checkout, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(strings.ToLower(p.Currency)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(p.Description),
				},
				UnitAmount: stripe.Int64(p.AmountMinorUnits),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}
	if id := p.Metadata["booking_id"]; id != "" {
		params.ClientReferenceID = stripe.String(id)
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, wrapStripeError(err)
	}
	if session.URL == "" {
		return nil, &GatewayError{Gateway: gatewayStripe, Message: "response missing checkout url"}
	}
	return &Checkout{PaymentID: session.ID, CheckoutURL: session.URL}, nil
}

func (g *StripeGateway) RetrieveStatus(ctx context.Context, paymentID string) (PaymentStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	session, err := g.api.CheckoutSessions.Get(paymentID, params)
	if err != nil {
		return "", wrapStripeError(err)
	}
	return stripeSessionStatus(session), nil
}

func stripeSessionStatus(s *stripe.CheckoutSession) PaymentStatus {
	switch {
	case s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		s.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return PaymentSucceeded
	case s.Status == stripe.CheckoutSessionStatusExpired:
		return PaymentCancelled
	default:
		return PaymentPending
	}
}

func (g *StripeGateway) ParseWebhook(payload []byte, header http.Header) (*WebhookEvent, error) {
	if g.webhookSecret == "" {
		return nil, &WebhookSignatureError{Gateway: gatewayStripe, Reason: "webhook secret not configured"}
	}
	event, err := webhook.ConstructEventWithOptions(payload, header.Get("Stripe-Signature"), g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, &WebhookSignatureError{Gateway: gatewayStripe, Reason: err.Error()}
	}

	var eventType string
	switch string(event.Type) {
	case "checkout.session.completed":
		eventType = "" // resolved from payment_status below
	case "checkout.session.async_payment_succeeded":
		eventType = EventSucceeded
	case "checkout.session.async_payment_failed":
		eventType = EventFailed
	case "checkout.session.expired":
		eventType = EventCancelled
	default:
		return &WebhookEvent{Type: string(event.Type), Ignored: true}, nil
	}

	if event.Data == nil {
		return nil, fmt.Errorf("%w: event without data", ErrMalformedWebhook)
	}
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWebhook, err)
	}
	if eventType == "" {
		if stripeSessionStatus(&session) == PaymentSucceeded {
			eventType = EventSucceeded
		} else {
			eventType = EventPending
		}
	}

	return &WebhookEvent{
		Type: eventType,
		Data: WebhookData{
			ID:       session.ID,
			Status:   string(session.PaymentStatus),
			Metadata: session.Metadata,
			Amount:   session.AmountTotal,
			Currency: strings.ToUpper(string(session.Currency)),
		},
		Raw: map[string]interface{}{
			"stripe_event_id":   event.ID,
			"stripe_event_type": string(event.Type),
			"object":            event.Data.Object,
		},
	}, nil
}

func wrapStripeError(err error) error {
	var serr *stripe.Error
	if errors.As(err, &serr) {
		return &GatewayError{Gateway: gatewayStripe, StatusCode: serr.HTTPStatusCode, Message: serr.Msg, Err: err}
	}
	return &GatewayError{Gateway: gatewayStripe, Message: err.Error(), Err: err}
}
