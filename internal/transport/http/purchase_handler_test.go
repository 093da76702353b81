package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"logomarket/internal/domain"
)

type sinkStub struct {
	records []domain.PurchaseRecord
	clicks  []string
	fail    bool
}

func (s *sinkStub) CreatePurchase(_ context.Context, rec domain.PurchaseRecord) (*domain.PurchaseRecord, error) {
	if s.fail {
		return nil, errors.New("connection reset")
	}
	rec.ID = uuid.New()
	s.records = append(s.records, rec)
	return &rec, nil
}

func (s *sinkStub) IncrementClicks(_ context.Context, logoID string) error {
	s.clicks = append(s.clicks, logoID)
	return nil
}

func newPurchaseRouter(t *testing.T, sink *sinkStub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewPurchaseHandler(sink, zap.NewNop())
	r := gin.New()
	r.POST("/purchases", h.Create)
	return r
}

func TestCreatePurchase(t *testing.T) {
	sink := &sinkStub{}
	r := newPurchaseRouter(t, sink)

	w, payload := doJSON(t, r, http.MethodPost, "/purchases", map[string]any{
		"logo_id":             "logo-1",
		"razorpay_payment_id": "pay_X0001",
		"razorpay_order_id":   "order_X0001",
		"amount":              49.99,
		"currency":            "INR",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %v", w.Code, payload)
	}
	if payload["success"] != true {
		t.Fatalf("payload = %v", payload)
	}
	if len(sink.records) != 1 || sink.records[0].Status != domain.PurchaseCompleted {
		t.Fatalf("records = %+v", sink.records)
	}

	purchase := payload["purchase"].(map[string]any)
	if _, err := uuid.Parse(purchase["id"].(string)); err != nil {
		t.Fatalf("purchase id %v not a uuid", purchase["id"])
	}
}

func TestCreatePurchaseMissingFields(t *testing.T) {
	sink := &sinkStub{}
	r := newPurchaseRouter(t, sink)

	w, payload := doJSON(t, r, http.MethodPost, "/purchases", map[string]any{
		"logo_id": "logo-1",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if payload["message"] != "Missing purchase data" {
		t.Fatalf("message = %v", payload["message"])
	}
	if len(sink.records) != 0 {
		t.Fatal("record written for invalid request")
	}
}

func TestCreatePurchaseSinkFailure(t *testing.T) {
	sink := &sinkStub{fail: true}
	r := newPurchaseRouter(t, sink)

	w, payload := doJSON(t, r, http.MethodPost, "/purchases", map[string]any{
		"logo_id":             "logo-1",
		"razorpay_payment_id": "pay_X0001",
		"razorpay_order_id":   "order_X0001",
		"amount":              49.99,
		"currency":            "INR",
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if payload["success"] != false {
		t.Fatalf("payload = %v", payload)
	}
}
