package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"logomarket/internal/config"
)

// razorpayGateway talks to the Razorpay Orders API over HTTPS with basic
// auth. It never retries: a retry after a partial success risks a double
// charge, so transient failures are surfaced to the caller as-is.
type razorpayGateway struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

func NewRazorpayGateway(cfg config.GatewayConfig) Gateway {
	return &razorpayGateway{
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type razorpayOrderPayload struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
	Error    *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, req OrderRequest) (MintedOrder, error) {
	payload := razorpayOrderPayload{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes: map[string]string{
			"logoId":   req.LogoID,
			"logoName": req.LogoName,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return MintedOrder{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return MintedOrder{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return MintedOrder{}, fmt.Errorf("razorpay create order: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return MintedOrder{}, fmt.Errorf("razorpay read response: %w", err)
	}

	var parsed razorpayOrderResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return MintedOrder{}, fmt.Errorf("razorpay decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Description != "" {
			return MintedOrder{}, fmt.Errorf("razorpay order rejected: %s", parsed.Error.Description)
		}
		return MintedOrder{}, fmt.Errorf("razorpay order rejected: status %d", resp.StatusCode)
	}

	return MintedOrder{
		ID:       parsed.ID,
		Amount:   parsed.Amount,
		Currency: parsed.Currency,
		Receipt:  parsed.Receipt,
		Status:   parsed.Status,
	}, nil
}
