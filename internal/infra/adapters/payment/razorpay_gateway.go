// File: internal/infra/adapters/payment/razorpay_gateway.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"clinic-payments/internal/domain"
	"clinic-payments/internal/domain/model"
	"clinic-payments/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*RazorpayGateway)(nil)

// RazorpayGateway implements adapter.PaymentGateway against the Orders REST
// API. Order creation is a server-to-server call authenticated with HTTP basic
// auth (key id / key secret); the secret never appears in responses or logs.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayGateway(keyID, keySecret, baseURL string) (*RazorpayGateway, error) {
	if keyID == "" {
		return nil, errors.New("razorpay key id empty")
	}
	if keySecret == "" {
		return nil, errors.New("razorpay key secret empty")
	}
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}
	return &RazorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (g *RazorpayGateway) Name() string { return "razorpay" }

// CreateOrder calls POST /v1/orders and returns the gateway's order descriptor.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (*model.Order, error) {
	payload := map[string]any{
		"amount":          amountMinorUnits,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", domain.ErrGateway, gatewayErrorDetail(resp))
	}

	var out struct {
		ID        string `json:"id"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		Receipt   string `json:"receipt"`
		Status    string `json:"status"`
		CreatedAt int64  `json:"created_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode order response: %v", domain.ErrGateway, err)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("%w: order response missing id", domain.ErrGateway)
	}
	return &model.Order{
		ID:        out.ID,
		Amount:    out.Amount,
		Currency:  out.Currency,
		Receipt:   out.Receipt,
		Status:    out.Status,
		CreatedAt: out.CreatedAt,
	}, nil
}

// gatewayErrorDetail extracts the provider's error description so callers can
// surface it as diagnostics. The body shape is {"error":{"code","description"}}.
func gatewayErrorDetail(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var out struct {
		Error struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &out); err == nil && out.Error.Description != "" {
		return fmt.Sprintf("http %d: %s", resp.StatusCode, out.Error.Description)
	}
	return fmt.Sprintf("http %d", resp.StatusCode)
}
