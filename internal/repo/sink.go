package repo

import (
	"context"

	"logomarket/internal/domain"
)

// storeSink adapts the catalog and purchase repos into the narrow sink the
// checkout flow writes to.
type storeSink struct {
	catalog   CatalogRepo
	purchases PurchaseRepo
}

func NewSink(catalog CatalogRepo, purchases PurchaseRepo) *storeSink {
	return &storeSink{catalog: catalog, purchases: purchases}
}

func (s *storeSink) CreatePurchase(ctx context.Context, rec domain.PurchaseRecord) (*domain.PurchaseRecord, error) {
	return s.purchases.CreatePurchase(ctx, rec)
}

func (s *storeSink) IncrementClicks(ctx context.Context, logoID string) error {
	return s.catalog.IncrementClicks(ctx, logoID)
}
