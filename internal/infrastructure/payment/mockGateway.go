package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// MockGateway mints orders locally with the same failure modes a real
// processor exhibits: plain success, explicit rejection, and the slow
// transport error where the order was actually minted on the processor side
// but the caller only sees a timeout.
type MockGateway struct {
	mu     sync.RWMutex
	minted map[string]MintedOrder
	seq    int
}

func NewMockGateway() *MockGateway {
	return &MockGateway{minted: make(map[string]MintedOrder)}
}

func (g *MockGateway) CreateOrder(ctx context.Context, req OrderRequest) (MintedOrder, error) {
	chance := rand.IntN(100)

	switch {
	case chance < 85:
		time.Sleep(20 * time.Millisecond)
		return g.mint(req), nil

	case chance < 95:
		time.Sleep(20 * time.Millisecond)
		return MintedOrder{}, errors.New("order rejected by processor")

	default:
		// Order is minted on the processor side, but the caller sees a
		// timeout. The order is orphaned; nothing downstream references it.
		g.mint(req)
		time.Sleep(200 * time.Millisecond)
		return MintedOrder{}, errors.New("connection timeout")
	}
}

func (g *MockGateway) mint(req OrderRequest) MintedOrder {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	order := MintedOrder{
		ID:       fmt.Sprintf("order_MOCK%08d", g.seq),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}
	g.minted[order.ID] = order
	return order
}

// Minted reports whether the processor holds an order with the given id,
// regardless of what the caller observed when creating it.
func (g *MockGateway) Minted(orderID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.minted[orderID]
	return ok
}
