package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	gatewayDodo         = "dodo"
	dodoSignatureHeader = "x-dodo-signature"
	defaultDodoBaseURL  = "https://api.dodopayments.com"
)

// DodoGateway talks to the DODO Payments REST API.
type DodoGateway struct {
	apiKey        string
	baseURL       string
	webhookSecret string
	webhookURL    string
	httpClient    *http.Client
}

// NewDodoGateway builds a gateway. webhookURL is forwarded so DODO knows where to call back.
func NewDodoGateway(apiKey, baseURL, webhookSecret, webhookURL string) *DodoGateway {
	if baseURL == "" {
		baseURL = defaultDodoBaseURL
	}
	return &DodoGateway{
		apiKey:        apiKey,
		baseURL:       strings.TrimRight(baseURL, "/"),
		webhookSecret: webhookSecret,
		webhookURL:    webhookURL,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *DodoGateway) Name() string { return gatewayDodo }

type dodoCreateRequest struct {
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	Description   string            `json:"description"`
	CustomerEmail string            `json:"customer_email"`
	ReturnURL     string            `json:"return_url"`
	CancelURL     string            `json:"cancel_url"`
	WebhookURL    string            `json:"webhook_url,omitempty"`
	Metadata      map[string]string `json:"metadata"`
}

type dodoPayment struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
	Status      string `json:"status"`
}

func (g *DodoGateway) CreateCheckout(ctx context.Context, p CheckoutParams) (*Checkout, error) {
	body, err := json.Marshal(dodoCreateRequest{
		Amount:        p.AmountMinorUnits,
		Currency:      p.Currency,
		Description:   p.Description,
		CustomerEmail: p.CustomerEmail,
		ReturnURL:     p.SuccessURL,
		CancelURL:     p.CancelURL,
		WebhookURL:    g.webhookURL,
		Metadata:      p.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("encode dodo request: %w", err)
	}

	var out dodoPayment
	if err := g.do(ctx, http.MethodPost, "/v1/payments", body, &out); err != nil {
		return nil, err
	}
	if out.ID == "" || out.CheckoutURL == "" {
		return nil, &GatewayError{Gateway: gatewayDodo, Message: "response missing payment id or checkout url"}
	}
	return &Checkout{PaymentID: out.ID, CheckoutURL: out.CheckoutURL}, nil
}

func (g *DodoGateway) RetrieveStatus(ctx context.Context, paymentID string) (PaymentStatus, error) {
	var out dodoPayment
	if err := g.do(ctx, http.MethodGet, "/v1/payments/"+url.PathEscape(paymentID), nil, &out); err != nil {
		return "", err
	}
	return dodoStatus(out.Status), nil
}

func dodoStatus(s string) PaymentStatus {
	switch strings.ToLower(s) {
	case "succeeded", "completed":
		return PaymentSucceeded
	case "failed":
		return PaymentFailed
	case "cancelled", "canceled":
		return PaymentCancelled
	default:
		return PaymentPending
	}
}

func (g *DodoGateway) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("dodo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &GatewayError{Gateway: gatewayDodo, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &GatewayError{Gateway: gatewayDodo, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &GatewayError{Gateway: gatewayDodo, StatusCode: resp.StatusCode, Message: "invalid response body", Err: err}
	}
	return nil
}

type dodoWebhook struct {
	Type      string `json:"type"`
	EventType string `json:"event_type"`
	Data      struct {
		ID        string                 `json:"id"`
		PaymentID string                 `json:"payment_id"`
		Status    string                 `json:"status"`
		Amount    int64                  `json:"amount"`
		Currency  string                 `json:"currency"`
		Metadata  map[string]interface{} `json:"metadata"`
	} `json:"data"`
}

// verifySignature accepts either "sha256=<hex hmac of body>" or the shared secret itself.
func (g *DodoGateway) verifySignature(payload []byte, signature string) error {
	if g.webhookSecret == "" {
		return &WebhookSignatureError{Gateway: gatewayDodo, Reason: "webhook secret not configured"}
	}
	if signature == "" {
		return &WebhookSignatureError{Gateway: gatewayDodo, Reason: "missing " + dodoSignatureHeader + " header"}
	}

	if hexSig, ok := strings.CutPrefix(signature, "sha256="); ok {
		mac := hmac.New(sha256.New, []byte(g.webhookSecret))
		mac.Write(payload)
		expected := hex.EncodeToString(mac.Sum(nil))
		if hmac.Equal([]byte(strings.ToLower(hexSig)), []byte(expected)) {
			return nil
		}
		return &WebhookSignatureError{Gateway: gatewayDodo, Reason: "hmac mismatch"}
	}
	if hmac.Equal([]byte(signature), []byte(g.webhookSecret)) {
		return nil
	}
	return &WebhookSignatureError{Gateway: gatewayDodo, Reason: "shared secret mismatch"}
}

func (g *DodoGateway) ParseWebhook(payload []byte, header http.Header) (*WebhookEvent, error) {
	if err := g.verifySignature(payload, header.Get(dodoSignatureHeader)); err != nil {
		return nil, err
	}

	var w dodoWebhook
	if err := json.Unmarshal(payload, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWebhook, err)
	}
	eventType := w.EventType
	if eventType == "" {
		eventType = w.Type
	}
	id := w.Data.ID
	if id == "" {
		id = w.Data.PaymentID
	}
	if eventType == "" || id == "" {
		return nil, fmt.Errorf("%w: missing event type or payment id", ErrMalformedWebhook)
	}

	metadata := make(map[string]string, len(w.Data.Metadata))
	for k, v := range w.Data.Metadata {
		if v != nil {
			metadata[k] = fmt.Sprint(v)
		}
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(payload, &raw)

	return &WebhookEvent{
		Type: eventType,
		Data: WebhookData{
			ID:       id,
			Status:   w.Data.Status,
			Metadata: metadata,
			Amount:   w.Data.Amount,
			Currency: w.Data.Currency,
		},
		Raw: raw,
	}, nil
}
