package widget

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"logomarket/internal/domain"
	"logomarket/internal/signature"
)

// ScriptedWidget stands in for the real payment popup in simulations. It
// signs confirmations with the shared secret so the server-side verifier
// accepts them, and occasionally cancels, declines, or tampers with the
// signature the way a hostile client would.
type ScriptedWidget struct {
	secret string

	mu  sync.Mutex
	seq int
}

func NewScriptedWidget(secret string) *ScriptedWidget {
	return &ScriptedWidget{secret: secret}
}

func (w *ScriptedWidget) Collect(ctx context.Context, order domain.Order) (domain.PaymentConfirmation, error) {
	select {
	case <-ctx.Done():
		return domain.PaymentConfirmation{}, ctx.Err()
	case <-time.After(30 * time.Millisecond):
	}

	chance := rand.IntN(100)
	switch {
	case chance < 70:
		return w.confirm(order, false), nil
	case chance < 80:
		// Forged confirmation; the verifier must reject it.
		return w.confirm(order, true), nil
	case chance < 92:
		return domain.PaymentConfirmation{}, ErrCancelled
	default:
		return domain.PaymentConfirmation{}, ErrDeclined
	}
}

func (w *ScriptedWidget) confirm(order domain.Order, tampered bool) domain.PaymentConfirmation {
	w.mu.Lock()
	w.seq++
	paymentID := fmt.Sprintf("pay_MOCK%08d", w.seq)
	w.mu.Unlock()

	sig := signature.Expected(order.ID, paymentID, w.secret)
	if tampered {
		sig = sig[:len(sig)-1] + "0"
		if sig == signature.Expected(order.ID, paymentID, w.secret) {
			sig = sig[:len(sig)-1] + "1"
		}
	}

	return domain.PaymentConfirmation{
		OrderID:   order.ID,
		PaymentID: paymentID,
		Signature: sig,
	}
}
