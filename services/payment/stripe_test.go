package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

func newStripeTestGateway(t *testing.T, handler http.HandlerFunc) *StripeGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return NewStripeGateway("sk_test_123", "whsec_test", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
}

func stripeSign(payload []byte, secret string) string {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + "." + string(payload)))
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestStripeGateway_CreateCheckout(t *testing.T) {
	g := newStripeTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.Form.Get("mode"))
		assert.Equal(t, "12000", r.Form.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "mad", r.Form.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "jane@example.com", r.Form.Get("customer_email"))
		assert.Equal(t, "b1", r.Form.Get("metadata[booking_id]"))
		assert.Equal(t, "b1", r.Form.Get("client_reference_id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_123","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_123"}`))
	})

	checkout, err := g.CreateCheckout(context.Background(), CheckoutParams{
		AmountMinorUnits: 12000,
		Currency:         "MAD",
		CustomerEmail:    "jane@example.com",
		Description:      "T-shirt Printing - Jane",
		SuccessURL:       "https://studio.example/payment/success?booking_id=b1",
		CancelURL:        "https://studio.example/payment/cancel?booking_id=b1",
		Metadata:         map[string]string{"booking_id": "b1", "service": "tshirt-printing"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", checkout.PaymentID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", checkout.CheckoutURL)
}

func TestStripeGateway_CreateCheckoutError(t *testing.T) {
	g := newStripeTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid currency: xyz","type":"invalid_request_error"}}`))
	})

	_, err := g.CreateCheckout(context.Background(), CheckoutParams{AmountMinorUnits: 100, Currency: "XYZ"})
	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, http.StatusBadRequest, gerr.StatusCode)
	assert.Equal(t, "Invalid currency: xyz", gerr.Message)
	assert.Equal(t, "stripe", gerr.Gateway)
}

func TestStripeGateway_RetrieveStatus(t *testing.T) {
	bodies := map[string]string{
		"cs_paid":    `{"id":"cs_paid","object":"checkout.session","payment_status":"paid","status":"complete"}`,
		"cs_open":    `{"id":"cs_open","object":"checkout.session","payment_status":"unpaid","status":"open"}`,
		"cs_expired": `{"id":"cs_expired","object":"checkout.session","payment_status":"unpaid","status":"expired"}`,
	}
	g := newStripeTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/v1/checkout/sessions/"):]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bodies[id]))
	})

	tests := map[string]PaymentStatus{
		"cs_paid":    PaymentSucceeded,
		"cs_open":    PaymentPending,
		"cs_expired": PaymentCancelled,
	}
	for id, want := range tests {
		got, err := g.RetrieveStatus(context.Background(), id)
		require.NoError(t, err, id)
		assert.Equal(t, want, got, id)
	}
}

func TestStripeGateway_ParseWebhook(t *testing.T) {
	g := NewStripeGateway("sk_test_123", "whsec_test", nil)
	payload := []byte(`{"id":"evt_1","object":"event","api_version":"2020-08-27","type":"checkout.session.completed",` +
		`"data":{"object":{"id":"cs_test_123","object":"checkout.session","payment_status":"paid","status":"complete",` +
		`"amount_total":12000,"currency":"mad","metadata":{"booking_id":"b1"}}}}`)

	header := http.Header{}
	header.Set("Stripe-Signature", stripeSign(payload, "whsec_test"))

	event, err := g.ParseWebhook(payload, header)
	require.NoError(t, err)
	assert.Equal(t, EventSucceeded, event.Type)
	assert.Equal(t, "cs_test_123", event.Data.ID)
	assert.Equal(t, "b1", event.Data.Metadata["booking_id"])
	assert.Equal(t, int64(12000), event.Data.Amount)
	assert.Equal(t, "MAD", event.Data.Currency)
	assert.Equal(t, "evt_1", event.Raw["stripe_event_id"])
}

func TestStripeGateway_ParseWebhookRejectsBadSignature(t *testing.T) {
	g := NewStripeGateway("sk_test_123", "whsec_test", nil)
	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{}}}`)

	header := http.Header{}
	header.Set("Stripe-Signature", stripeSign(payload, "whsec_other"))
	_, err := g.ParseWebhook(payload, header)
	var serr *WebhookSignatureError
	assert.ErrorAs(t, err, &serr)

	_, err = NewStripeGateway("sk", "", nil).ParseWebhook(payload, header)
	assert.ErrorAs(t, err, &serr)
}

func TestStripeGateway_ParseWebhookIgnoresOtherEvents(t *testing.T) {
	g := NewStripeGateway("sk_test_123", "whsec_test", nil)
	payload := []byte(`{"id":"evt_2","object":"event","type":"customer.created","data":{"object":{"id":"cus_1","object":"customer"}}}`)
	header := http.Header{}
	header.Set("Stripe-Signature", stripeSign(payload, "whsec_test"))

	event, err := g.ParseWebhook(payload, header)
	require.NoError(t, err)
	assert.True(t, event.Ignored)
	assert.Equal(t, "customer.created", event.Type)
}

func TestStripeGateway_ExpiredSessionCancels(t *testing.T) {
	g := NewStripeGateway("sk_test_123", "whsec_test", nil)
	payload := []byte(`{"id":"evt_3","object":"event","type":"checkout.session.expired",` +
		`"data":{"object":{"id":"cs_old","object":"checkout.session","payment_status":"unpaid","status":"expired"}}}`)
	header := http.Header{}
	header.Set("Stripe-Signature", stripeSign(payload, "whsec_test"))

	event, err := g.ParseWebhook(payload, header)
	require.NoError(t, err)
	assert.Equal(t, EventCancelled, event.Type)
	assert.Equal(t, "cs_old", event.Data.ID)
}
