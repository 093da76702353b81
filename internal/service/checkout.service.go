package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"logomarket/internal/domain"
	"logomarket/internal/entitlement"
	"logomarket/internal/infrastructure/widget"
)

// ErrNetwork tags transport-level failures reaching the order service or the
// verify endpoint. Users may retry manually; the flow never retries on its
// own, because a repeated verification call is unsafe without idempotency
// guarantees from the gateway.
var ErrNetwork = errors.New("network error")

type CheckoutState string

const (
	StateIdle                 CheckoutState = "idle"
	StateOrderRequested       CheckoutState = "order_requested"
	StateWidgetOpen           CheckoutState = "widget_open"
	StateAwaitingVerification CheckoutState = "awaiting_verification"
	StateUnlocked             CheckoutState = "unlocked"
	StateFailed               CheckoutState = "failed"
	StateCancelled            CheckoutState = "cancelled"
)

type FailureReason string

const (
	FailOrderCreation     FailureReason = "order_creation_failed"
	FailWidgetUnavailable FailureReason = "widget_unavailable"
	FailPaymentDeclined   FailureReason = "payment_declined"
	FailSignatureMismatch FailureReason = "signature_mismatch"
	FailNetwork           FailureReason = "network_error"
	FailTimeout           FailureReason = "timeout"
)

// CheckoutResult is the terminal outcome of one purchase attempt.
type CheckoutResult struct {
	State      CheckoutState
	Reason     FailureReason
	Order      *domain.Order
	PurchaseID string
	// NeedsReconciliation is set when the payment verified but the durable
	// purchase record could not be written. The entitlement is granted
	// anyway; the discrepancy is queued for out-of-band repair.
	NeedsReconciliation bool
}

// PurchaseSink durably records completed purchases and download events. The
// checkout flow writes to it but does not depend on it to unlock.
type PurchaseSink interface {
	CreatePurchase(ctx context.Context, rec domain.PurchaseRecord) (*domain.PurchaseRecord, error)
	IncrementClicks(ctx context.Context, logoID string) error
}

// Reconciler accepts purchase records that verified but failed to persist.
type Reconciler interface {
	Enqueue(rec domain.PurchaseRecord)
}

// Alerter raises user-facing messages. The checkout service is the only
// caller; every terminal failure raises exactly one alert, a dismissed
// widget raises none.
type Alerter interface {
	Alert(msg string)
}

// CheckoutService drives a purchase end to end: mint order, collect payment
// through the widget, verify the signature server-side, grant the local
// entitlement and record the purchase.
type CheckoutService struct {
	orders       OrderService
	widget       widget.Widget
	verifier     Verifier
	entitlements *entitlement.Store
	purchases    PurchaseSink
	reconciler   Reconciler
	alerter      Alerter
	log          *zap.Logger
}

type CheckoutDeps struct {
	Orders       OrderService
	Widget       widget.Widget
	Verifier     Verifier
	Entitlements *entitlement.Store
	Purchases    PurchaseSink
	Reconciler   Reconciler
	Alerter      Alerter
	Logger       *zap.Logger
}

func NewCheckoutService(deps CheckoutDeps) *CheckoutService {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutService{
		orders:       deps.Orders,
		widget:       deps.Widget,
		verifier:     deps.Verifier,
		entitlements: deps.Entitlements,
		purchases:    deps.Purchases,
		reconciler:   deps.Reconciler,
		alerter:      deps.Alerter,
		log:          log,
	}
}

// Checkout runs one purchase attempt for a catalog item. It is synchronous:
// the widget and both network calls are the only suspension points, each
// fired once with no automatic retry.
func (s *CheckoutService) Checkout(ctx context.Context, item domain.CatalogItem) CheckoutResult {
	state := StateIdle

	// Idle -> OrderRequested
	state = StateOrderRequested
	order, err := s.orders.CreateOrder(ctx, CreateOrderInput{
		Amount:   item.Price,
		Currency: item.Currency,
		LogoID:   item.ID.String(),
		LogoName: item.Name,
	})
	if err != nil {
		reason := FailOrderCreation
		if errors.Is(err, ErrNetwork) {
			reason = FailNetwork
		}
		return s.fail(state, reason, nil, "Payment failed: could not create order")
	}

	// OrderRequested -> WidgetOpen
	state = StateWidgetOpen
	s.log.Debug("payment widget opened",
		zap.String("order_id", order.ID),
		zap.Int64("amount", order.Amount),
		zap.String("currency", order.Currency),
	)

	conf, err := s.widget.Collect(ctx, *order)
	if err != nil {
		switch {
		case errors.Is(err, widget.ErrCancelled):
			// User dismissed the widget; a logged no-op, never an alert.
			s.log.Info("payment cancelled by user", zap.String("order_id", order.ID))
			return CheckoutResult{State: StateCancelled, Order: order}
		case errors.Is(err, widget.ErrUnavailable):
			return s.fail(state, FailWidgetUnavailable, order, "Payment failed: payment widget could not be loaded")
		case errors.Is(err, context.DeadlineExceeded):
			return s.fail(state, FailTimeout, order, "Payment failed: timed out")
		default:
			return s.fail(state, FailPaymentDeclined, order, "Payment failed: payment was declined")
		}
	}

	// WidgetOpen -> AwaitingVerification
	state = StateAwaitingVerification
	result, err := s.verifier.VerifyPayment(ctx, conf)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return s.fail(state, FailTimeout, order, "Payment failed: verification timed out")
		}
		return s.fail(state, FailNetwork, order, "Payment failed: could not verify payment")
	}
	if !result.Authentic {
		return s.fail(state, FailSignatureMismatch, order, "Payment failed: invalid payment signature")
	}

	// AwaitingVerification -> Unlocked. The purchase record is only ever
	// built after an authentic verification result.
	rec := domain.PurchaseRecord{
		ID:        uuid.New(),
		LogoID:    item.ID.String(),
		PaymentID: result.PaymentID,
		OrderID:   order.ID,
		Amount:    item.Price,
		Currency:  order.Currency,
		Status:    domain.PurchaseCompleted,
		CreatedAt: time.Now(),
	}

	needsReconciliation := false
	stored, err := s.purchases.CreatePurchase(ctx, rec)
	if err != nil || stored == nil {
		// Money has changed hands: the user must not be denied access. The
		// discrepancy is queued for out-of-band repair instead of being
		// silently dropped.
		needsReconciliation = true
		if s.reconciler != nil {
			s.reconciler.Enqueue(rec)
		}
		s.log.Error("purchase record write failed after verified payment",
			zap.String("order_id", order.ID),
			zap.String("payment_id", result.PaymentID),
			zap.Error(err),
		)
	} else {
		rec = *stored
	}

	links := entitlement.ResolveLinks(item)
	s.entitlements.Grant(item.ID.String(), rec.ID.String(), links)

	if err := s.purchases.IncrementClicks(ctx, item.ID.String()); err != nil {
		// Fire and forget; the counter is cosmetic.
		s.log.Warn("click increment failed", zap.String("logo_id", item.ID.String()), zap.Error(err))
	}

	if s.alerter != nil {
		s.alerter.Alert("Payment successful! You can now download your logo files.")
	}

	return CheckoutResult{
		State:               StateUnlocked,
		Order:               order,
		PurchaseID:          rec.ID.String(),
		NeedsReconciliation: needsReconciliation,
	}
}

func (s *CheckoutService) fail(from CheckoutState, reason FailureReason, order *domain.Order, msg string) CheckoutResult {
	fields := []zap.Field{zap.String("from_state", string(from)), zap.String("reason", string(reason))}
	if order != nil {
		fields = append(fields, zap.String("order_id", order.ID))
	}
	s.log.Warn("checkout failed", fields...)

	if s.alerter != nil {
		s.alerter.Alert(msg)
	}
	return CheckoutResult{State: StateFailed, Reason: reason, Order: order}
}
