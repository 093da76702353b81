package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"logomarket/internal/config"
	"logomarket/internal/domain"
	"logomarket/internal/infrastructure/payment"
)

var (
	// ErrValidation: bad caller input, never retried.
	ErrValidation = errors.New("validation error")
	// ErrNotConfigured: gateway credentials missing from the environment. A
	// misconfigured deployment must never silently accept payments.
	ErrNotConfigured = errors.New("payment gateway not configured")
)

// GatewayError wraps a transport or processor-side failure while minting an
// order. The detail is logged server-side, not shown to users.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string { return fmt.Sprintf("gateway error: %v", e.Err) }
func (e *GatewayError) Unwrap() error { return e.Err }

type CreateOrderInput struct {
	Amount   float64
	Currency string
	LogoID   string
	LogoName string
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
}

type orderService struct {
	cfg     config.GatewayConfig
	gateway payment.Gateway
	now     func() time.Time
}

func NewOrderService(cfg config.GatewayConfig, gateway payment.Gateway) OrderService {
	return &orderService{
		cfg:     cfg,
		gateway: gateway,
		now:     time.Now,
	}
}

// CreateOrder validates the purchase request and mints an order at the
// gateway. Nothing is persisted locally; the order exists only in the
// gateway's system of record. Gateway calls are never retried here: a retry
// after a partial success risks a double charge.
func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount is required", ErrValidation)
	}
	if in.LogoID == "" {
		return nil, fmt.Errorf("%w: logoId is required", ErrValidation)
	}
	if s.cfg.KeyID == "" || s.cfg.KeySecret == "" {
		return nil, ErrNotConfigured
	}

	currency := in.Currency
	if currency == "" {
		currency = "INR"
	}

	// Exact for currencies with 2-decimal subunits: 49.99 -> 4999.
	amountInPaise := int64(math.Round(in.Amount * 100))

	minted, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   amountInPaise,
		Currency: currency,
		Receipt:  buildReceipt(in.LogoID, s.now()),
		LogoID:   in.LogoID,
		LogoName: in.LogoName,
	})
	if err != nil {
		return nil, &GatewayError{Err: err}
	}

	return &domain.Order{
		ID:       minted.ID,
		Amount:   minted.Amount,
		Currency: minted.Currency,
		Receipt:  minted.Receipt,
		Status:   domain.OrderCreated,
		LogoID:   in.LogoID,
		LogoName: in.LogoName,
	}, nil
}

// buildReceipt derives the gateway bookkeeping token. Two orders for the
// same item within the same millisecond window may collide; receipts are not
// idempotency keys, so that is acceptable.
func buildReceipt(logoID string, at time.Time) string {
	shortID := logoID
	if len(shortID) > 10 {
		shortID = shortID[:10]
	}

	ts := strconv.FormatInt(at.UnixMilli(), 10)
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}

	receipt := "logo_" + shortID + "_" + ts
	if len(receipt) > 40 {
		receipt = receipt[:40]
	}
	return receipt
}
