// Simulation driver: runs a batch of end-to-end checkout attempts against
// the mock gateway and a scripted widget, then lets the reconciliation
// worker repair any purchases whose durable write failed.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"logomarket/internal/config"
	"logomarket/internal/domain"
	"logomarket/internal/entitlement"
	"logomarket/internal/infrastructure/payment"
	"logomarket/internal/infrastructure/widget"
	"logomarket/internal/service"
	"logomarket/internal/worker"
)

const checkoutAttempts = 20

// flakySink drops a share of purchase writes so the reconciliation path gets
// exercised.
type flakySink struct {
	mu      sync.Mutex
	records []domain.PurchaseRecord
	flaky   bool
}

func (s *flakySink) CreatePurchase(_ context.Context, rec domain.PurchaseRecord) (*domain.PurchaseRecord, error) {
	if s.flaky && rand.IntN(100) < 25 {
		return nil, errors.New("purchase store unavailable")
	}
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
	return &rec, nil
}

func (s *flakySink) IncrementClicks(context.Context, string) error { return nil }

func (s *flakySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type printAlerter struct{}

func (printAlerter) Alert(msg string) { fmt.Printf("    [ALERT] %s\n", msg) }

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	secret := "mock_key_secret"
	gatewayCfg := config.GatewayConfig{KeyID: "rzp_test_mock", KeySecret: secret}

	orders := service.NewOrderService(gatewayCfg, payment.NewMockGateway())
	verifier := service.NewVerifyService(secret, log)
	entitlements := entitlement.NewStore()
	sink := &flakySink{flaky: true}
	journal := worker.NewJournal()

	checkout := service.NewCheckoutService(service.CheckoutDeps{
		Orders:       orders,
		Widget:       widget.NewScriptedWidget(secret),
		Verifier:     verifier,
		Entitlements: entitlements,
		Purchases:    sink,
		Reconciler:   journal,
		Alerter:      printAlerter{},
		Logger:       log,
	})

	fmt.Printf("--- STARTING SIMULATION (%d CHECKOUTS) ---\n", checkoutAttempts)
	for i := 0; i < checkoutAttempts; i++ {
		item := domain.CatalogItem{
			ID:               uuid.New(),
			Name:             fmt.Sprintf("Logo #%d", i+1),
			Price:            float64(10+rand.IntN(90)) + 0.99,
			Currency:         "INR",
			AvailableFormats: []string{"png", "svg"},
			Formats: map[string]string{
				"png": "https://assets.example.com/logo.png",
				"svg": "https://assets.example.com/logo.svg",
			},
		}

		fmt.Printf("[%d] Checking out %s (%.2f %s) ... ", i+1, item.Name, item.Price, item.Currency)
		result := checkout.Checkout(ctx, item)

		switch result.State {
		case service.StateUnlocked:
			fmt.Printf("UNLOCKED (purchase %s)\n", result.PurchaseID)
			if result.NeedsReconciliation {
				fmt.Println("    -> purchase record pending reconciliation")
			}
		case service.StateCancelled:
			fmt.Println("CANCELLED")
		default:
			fmt.Printf("FAILED: %s\n", result.Reason)
		}

		fmt.Printf("    -> unlocked=%v links=%d\n",
			entitlements.IsUnlocked(item.ID.String()),
			len(entitlements.LinksFor(item.ID.String())),
		)
		time.Sleep(50 * time.Millisecond)
	}

	pending := len(journal.Pending())
	fmt.Printf("--- RECONCILIATION: %d pending, %d recorded ---\n", pending, sink.count())

	if pending > 0 {
		sink.flaky = false // the store has recovered
		rw := worker.NewReconciliationWorker(journal, sink, 500*time.Millisecond, log)

		workerCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		rw.Run(workerCtx)

		fmt.Printf("--- AFTER RECONCILIATION: %d pending, %d recorded ---\n",
			len(journal.Pending()), sink.count())
	}
}
