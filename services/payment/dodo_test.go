package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDodoGateway_CreateCheckout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payments", r.URL.Path)
		assert.Equal(t, "Bearer dodo_key", r.Header.Get("Authorization"))

		var req dodoCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(12000), req.Amount)
		assert.Equal(t, "MAD", req.Currency)
		assert.Equal(t, "https://studio.example/api/payments/webhook", req.WebhookURL)
		assert.Equal(t, "b1", req.Metadata["booking_id"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pay_1","checkout_url":"https://checkout.dodo.test/pay_1"}`))
	}))
	defer srv.Close()

	g := NewDodoGateway("dodo_key", srv.URL+"/", "secret", "https://studio.example/api/payments/webhook")
	checkout, err := g.CreateCheckout(context.Background(), CheckoutParams{
		AmountMinorUnits: 12000,
		Currency:         "MAD",
		Metadata:         map[string]string{"booking_id": "b1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pay_1", checkout.PaymentID)
	assert.Equal(t, "https://checkout.dodo.test/pay_1", checkout.CheckoutURL)
}

func TestDodoGateway_CreateCheckoutNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid amount"}`))
	}))
	defer srv.Close()

	g := NewDodoGateway("dodo_key", srv.URL, "secret", "")
	_, err := g.CreateCheckout(context.Background(), CheckoutParams{AmountMinorUnits: 0, Currency: "MAD"})

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, http.StatusUnprocessableEntity, gerr.StatusCode)
	assert.Contains(t, gerr.Message, "invalid amount")
}

func TestDodoGateway_RetrieveStatus(t *testing.T) {
	statuses := map[string]string{"p1": "succeeded", "p2": "failed", "p3": "canceled", "p4": "requires_payment_method"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/v1/payments/"):]
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id, "status": statuses[id]})
	}))
	defer srv.Close()

	g := NewDodoGateway("dodo_key", srv.URL, "secret", "")
	want := map[string]PaymentStatus{"p1": PaymentSucceeded, "p2": PaymentFailed, "p3": PaymentCancelled, "p4": PaymentPending}
	for id, expected := range want {
		got, err := g.RetrieveStatus(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, expected, got, id)
	}
}

func TestDodoGateway_ParseWebhookHMAC(t *testing.T) {
	g := NewDodoGateway("k", "", "whsec", "")
	payload := []byte(`{"type":"payment.succeeded","data":{"payment_id":"pay_1","status":"succeeded","amount":12000,"currency":"MAD","metadata":{"booking_id":"b1","attempt":2}}}`)

	mac := hmac.New(sha256.New, []byte("whsec"))
	mac.Write(payload)
	header := http.Header{}
	header.Set("X-Dodo-Signature", "sha256="+hex.EncodeToString(mac.Sum(nil)))

	event, err := g.ParseWebhook(payload, header)
	require.NoError(t, err)
	assert.Equal(t, EventSucceeded, event.Type)
	assert.Equal(t, "pay_1", event.Data.ID)
	assert.Equal(t, "b1", event.Data.Metadata["booking_id"])
	assert.Equal(t, "2", event.Data.Metadata["attempt"])
	assert.Equal(t, int64(12000), event.Data.Amount)
	assert.Equal(t, "payment.succeeded", event.Raw["type"])
}

func TestDodoGateway_ParseWebhookSharedSecret(t *testing.T) {
	g := NewDodoGateway("k", "", "whsec", "")
	payload := []byte(`{"event_type":"payment.failed","data":{"id":"pay_2"}}`)
	header := http.Header{}
	header.Set("X-Dodo-Signature", "whsec")

	event, err := g.ParseWebhook(payload, header)
	require.NoError(t, err)
	assert.Equal(t, EventFailed, event.Type)
	assert.Equal(t, "pay_2", event.Data.ID)
}

func TestDodoGateway_ParseWebhookRejects(t *testing.T) {
	payload := []byte(`{"type":"payment.succeeded","data":{"id":"pay_1"}}`)
	var serr *WebhookSignatureError

	cases := map[string]struct {
		secret string
		header string
	}{
		"no secret configured": {secret: "", header: "anything"},
		"missing header":       {secret: "whsec", header: ""},
		"wrong shared secret":  {secret: "whsec", header: "nope"},
		"wrong hmac":           {secret: "whsec", header: "sha256=deadbeef"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			header := http.Header{}
			if tc.header != "" {
				header.Set("X-Dodo-Signature", tc.header)
			}
			_, err := NewDodoGateway("k", "", tc.secret, "").ParseWebhook(payload, header)
			assert.ErrorAs(t, err, &serr)
		})
	}
}

func TestDodoGateway_ParseWebhookMalformed(t *testing.T) {
	g := NewDodoGateway("k", "", "whsec", "")
	header := http.Header{}
	header.Set("X-Dodo-Signature", "whsec")

	_, err := g.ParseWebhook([]byte(`not json`), header)
	assert.ErrorIs(t, err, ErrMalformedWebhook)

	_, err = g.ParseWebhook([]byte(`{"type":"payment.succeeded","data":{}}`), header)
	assert.ErrorIs(t, err, ErrMalformedWebhook)
}
