package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"logomarket/internal/domain"
)

type PurchaseRepo interface {
	CreatePurchase(ctx context.Context, rec domain.PurchaseRecord) (*domain.PurchaseRecord, error)
	FindById(ctx context.Context, id uuid.UUID) (*domain.PurchaseRecord, error)
	CreateDownload(ctx context.Context, ev domain.DownloadEvent) error
}

type purchaseRepo struct {
	db *sql.DB
}

func NewPurchaseRepo(db *sql.DB) PurchaseRepo {
	return &purchaseRepo{db: db}
}

func (r *purchaseRepo) CreatePurchase(ctx context.Context, rec domain.PurchaseRecord) (*domain.PurchaseRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query := `INSERT INTO purchases (id, logo_id, razorpay_payment_id, razorpay_order_id, amount, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.LogoID, rec.PaymentID, rec.OrderID, rec.Amount, rec.Currency, rec.Status, rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *purchaseRepo) FindById(ctx context.Context, id uuid.UUID) (*domain.PurchaseRecord, error) {
	query := `SELECT id, logo_id, razorpay_payment_id, razorpay_order_id, amount, currency, status, created_at
		FROM purchases WHERE id = $1`

	var rec domain.PurchaseRecord
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.LogoID,
		&rec.PaymentID,
		&rec.OrderID,
		&rec.Amount,
		&rec.Currency,
		&rec.Status,
		&rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *purchaseRepo) CreateDownload(ctx context.Context, ev domain.DownloadEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO downloads (purchase_id, logo_id, format, created_at) VALUES ($1, $2, $3, $4)`,
		ev.PurchaseID, ev.LogoID, ev.Format, ev.CreatedAt,
	)
	return err
}
