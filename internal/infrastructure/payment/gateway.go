package payment

import (
	"context"
)

// OrderRequest is what the storefront asks the processor to mint.
type OrderRequest struct {
	Amount   int64 // minor currency units
	Currency string
	Receipt  string
	LogoID   string
	LogoName string
}

// MintedOrder is the processor's view of the created order.
type MintedOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// Gateway mints orders at the payment processor. Creating an order has no
// local side effects; the order exists only in the processor's system of
// record.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (MintedOrder, error)
}
