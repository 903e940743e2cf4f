package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"clinic-payments/internal/domain"
	"clinic-payments/internal/domain/model"
)

// APIClient talks to the payment routes of the order/verification server.
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateOrder requests a fresh gateway order for the given amount.
func (c *APIClient) CreateOrder(ctx context.Context, amountMinorUnits int64) (*model.Order, error) {
	body, _ := json.Marshal(map[string]int64{"amount": amountMinorUnits})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment/create-order", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var out struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		if out.Message == "" {
			out.Message = fmt.Sprintf("http %d", resp.StatusCode)
		}
		if resp.StatusCode == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, out.Message)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrGateway, out.Message)
	}

	var order model.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%w: decode order: %v", domain.ErrGateway, err)
	}
	return &order, nil
}

// VerifyPayment submits the completion triple. The boolean is the server's
// authenticity verdict; err is reserved for transport failures.
func (c *APIClient) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (bool, string, error) {
	body, _ := json.Marshal(map[string]string{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signature,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment/verify-payment", bytes.NewReader(body))
	if err != nil {
		return false, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, "", fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// An unreadable verdict is not a verified payment.
		return false, "", fmt.Errorf("%w: decode verify response: %v", domain.ErrGateway, err)
	}
	return out.Success, out.Message, nil
}
