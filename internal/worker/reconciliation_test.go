package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"logomarket/internal/domain"
)

type writerStub struct {
	failing bool
	calls   int
	written []domain.PurchaseRecord
}

func (w *writerStub) CreatePurchase(_ context.Context, rec domain.PurchaseRecord) (*domain.PurchaseRecord, error) {
	w.calls++
	if w.failing {
		return nil, errors.New("purchase store unavailable")
	}
	w.written = append(w.written, rec)
	return &rec, nil
}

func testRecord() domain.PurchaseRecord {
	return domain.PurchaseRecord{
		ID:        uuid.New(),
		LogoID:    "logo-1",
		PaymentID: "pay_TEST0001",
		OrderID:   "order_TEST0001",
		Amount:    49.99,
		Currency:  "INR",
		Status:    domain.PurchaseCompleted,
	}
}

func TestProcessDrainsJournal(t *testing.T) {
	journal := NewJournal()
	journal.Enqueue(testRecord())
	journal.Enqueue(testRecord())

	writer := &writerStub{}
	rw := NewReconciliationWorker(journal, writer, 0, zap.NewNop())

	rw.Process(context.Background())

	if len(journal.Pending()) != 0 {
		t.Fatalf("journal still holds %d entries", len(journal.Pending()))
	}
	if len(writer.written) != 2 {
		t.Fatalf("wrote %d records, want 2", len(writer.written))
	}
}

func TestProcessKeepsFailingEntries(t *testing.T) {
	journal := NewJournal()
	rec := testRecord()
	journal.Enqueue(rec)

	writer := &writerStub{failing: true}
	rw := NewReconciliationWorker(journal, writer, 0, zap.NewNop())

	rw.Process(context.Background())

	pending := journal.Pending()
	if len(pending) != 1 || pending[0].ID != rec.ID {
		t.Fatalf("journal = %v, want original entry kept", pending)
	}

	// Store recovers; the next sweep drains it.
	writer.failing = false
	rw.Process(context.Background())

	if len(journal.Pending()) != 0 {
		t.Fatal("journal not drained after recovery")
	}
	if len(writer.written) != 1 {
		t.Fatalf("wrote %d records, want 1", len(writer.written))
	}
}

func TestProcessNoPendingIsNoop(t *testing.T) {
	journal := NewJournal()
	writer := &writerStub{}
	rw := NewReconciliationWorker(journal, writer, 0, zap.NewNop())

	rw.Process(context.Background())

	if writer.calls != 0 {
		t.Fatalf("writer called %d times with empty journal", writer.calls)
	}
}
