// Package client is the storefront's HTTP client for the order service. The
// checkout flow uses it so that signature verification always happens where
// the shared secret lives, never in the client process.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"logomarket/internal/domain"
	"logomarket/internal/service"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

var _ service.OrderService = (*Client)(nil)
var _ service.Verifier = (*Client)(nil)
var _ service.PurchaseSink = (*Client)(nil)

type createOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Order   struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Receipt  string `json:"receipt"`
	} `json:"order"`
}

func (c *Client) CreateOrder(ctx context.Context, in service.CreateOrderInput) (*domain.Order, error) {
	var resp createOrderResponse
	status, err := c.post(ctx, "/payment/create-order", map[string]any{
		"amount":   in.Amount,
		"currency": in.Currency,
		"logoId":   in.LogoID,
		"logoName": in.LogoName,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrNetwork, err)
	}

	if !resp.Success {
		switch {
		case status == http.StatusBadRequest:
			return nil, fmt.Errorf("%w: %s", service.ErrValidation, resp.Message)
		case resp.Message == "Payment gateway not configured":
			return nil, service.ErrNotConfigured
		default:
			return nil, &service.GatewayError{Err: errors.New(resp.Message)}
		}
	}

	return &domain.Order{
		ID:       resp.Order.ID,
		Amount:   resp.Order.Amount,
		Currency: resp.Order.Currency,
		Receipt:  resp.Order.Receipt,
		Status:   domain.OrderCreated,
		LogoID:   in.LogoID,
		LogoName: in.LogoName,
	}, nil
}

type verifyPaymentResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	PaymentID string `json:"payment_id"`
}

func (c *Client) VerifyPayment(ctx context.Context, conf domain.PaymentConfirmation) (domain.VerificationResult, error) {
	var resp verifyPaymentResponse
	status, err := c.post(ctx, "/payment/verify-payment", map[string]any{
		"razorpay_order_id":   conf.OrderID,
		"razorpay_payment_id": conf.PaymentID,
		"razorpay_signature":  conf.Signature,
	}, &resp)
	if err != nil {
		return domain.VerificationResult{}, fmt.Errorf("%w: %v", service.ErrNetwork, err)
	}

	if resp.Success {
		return domain.VerificationResult{Authentic: true, PaymentID: resp.PaymentID}, nil
	}
	if status == http.StatusBadRequest && resp.Message == "Invalid payment signature" {
		return domain.VerificationResult{Authentic: false, PaymentID: conf.PaymentID}, nil
	}
	if status == http.StatusBadRequest {
		return domain.VerificationResult{}, fmt.Errorf("%w: %s", service.ErrValidation, resp.Message)
	}
	return domain.VerificationResult{}, fmt.Errorf("%w: %s", service.ErrNetwork, resp.Message)
}

type createPurchaseResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Purchase struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"purchase"`
}

// CreatePurchase persists the completed purchase server-side. Checkout treats
// any error here as a reconciliation case, not a payment failure.
func (c *Client) CreatePurchase(ctx context.Context, rec domain.PurchaseRecord) (*domain.PurchaseRecord, error) {
	var resp createPurchaseResponse
	if _, err := c.post(ctx, "/purchases", map[string]any{
		"logo_id":             rec.LogoID,
		"razorpay_payment_id": rec.PaymentID,
		"razorpay_order_id":   rec.OrderID,
		"amount":              rec.Amount,
		"currency":            rec.Currency,
	}, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrNetwork, err)
	}
	if !resp.Success {
		return nil, errors.New(resp.Message)
	}

	id, err := uuid.Parse(resp.Purchase.ID)
	if err != nil {
		return nil, fmt.Errorf("malformed purchase id %q: %w", resp.Purchase.ID, err)
	}
	rec.ID = id
	return &rec, nil
}

func (c *Client) IncrementClicks(ctx context.Context, logoID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/catalog/"+logoID+"/click", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", service.ErrNetwork, err)
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("click tally rejected with status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}
