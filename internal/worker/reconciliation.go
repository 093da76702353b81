package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"logomarket/internal/domain"
)

// Journal holds purchases whose payment verified but whose durable record
// failed to write. The entitlement was already granted; these entries exist
// so the money trail is repaired out of band instead of silently dropped.
type Journal struct {
	mu      sync.Mutex
	pending []domain.PurchaseRecord
}

func NewJournal() *Journal {
	return &Journal{}
}

func (j *Journal) Enqueue(rec domain.PurchaseRecord) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pending = append(j.pending, rec)
}

func (j *Journal) Pending() []domain.PurchaseRecord {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]domain.PurchaseRecord(nil), j.pending...)
}

func (j *Journal) remove(id string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	kept := j.pending[:0]
	for _, rec := range j.pending {
		if rec.ID.String() != id {
			kept = append(kept, rec)
		}
	}
	j.pending = kept
}

// PurchaseWriter is the slice of the purchase sink the worker needs.
type PurchaseWriter interface {
	CreatePurchase(ctx context.Context, rec domain.PurchaseRecord) (*domain.PurchaseRecord, error)
}

// ReconciliationWorker periodically retries the purchase-record writes that
// failed after a verified payment.
type ReconciliationWorker struct {
	journal   *Journal
	purchases PurchaseWriter
	interval  time.Duration
	log       *zap.Logger
}

func NewReconciliationWorker(journal *Journal, purchases PurchaseWriter, interval time.Duration, log *zap.Logger) *ReconciliationWorker {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReconciliationWorker{
		journal:   journal,
		purchases: purchases,
		interval:  interval,
		log:       log,
	}
}

func (rw *ReconciliationWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(rw.interval)
	defer ticker.Stop()

	rw.log.Info("reconciliation worker started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rw.Process(ctx)
		}
	}
}

// Process attempts every pending entry once. Entries that still fail stay in
// the journal for the next sweep.
func (rw *ReconciliationWorker) Process(ctx context.Context) {
	pending := rw.journal.Pending()
	if len(pending) == 0 {
		return
	}

	rw.log.Info("reconciling unrecorded purchases", zap.Int("count", len(pending)))

	for _, rec := range pending {
		if _, err := rw.purchases.CreatePurchase(ctx, rec); err != nil {
			rw.log.Warn("reconciliation write failed",
				zap.String("purchase_id", rec.ID.String()),
				zap.String("order_id", rec.OrderID),
				zap.Error(err),
			)
			continue // leave it for the next sweep
		}
		rw.journal.remove(rec.ID.String())
		rw.log.Info("purchase record reconciled",
			zap.String("purchase_id", rec.ID.String()),
			zap.String("payment_id", rec.PaymentID),
		)
	}
}
