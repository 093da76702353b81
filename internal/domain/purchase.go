package domain

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseStatus string

const (
	PurchaseCompleted PurchaseStatus = "completed"
)

// PurchaseRecord is the durable record of a completed purchase. It must never
// be constructed unless the payment signature verified authentic.
type PurchaseRecord struct {
	ID        uuid.UUID
	LogoID    string
	PaymentID string
	OrderID   string
	Amount    float64
	Currency  string
	Status    PurchaseStatus
	CreatedAt time.Time
}

// DownloadEvent records a single download of a purchased asset.
type DownloadEvent struct {
	PurchaseID uuid.UUID
	LogoID     string
	Format     string
	CreatedAt  time.Time
}
