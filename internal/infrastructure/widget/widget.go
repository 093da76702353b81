// Package widget models the external payment UI. The real widget is
// callback-driven and out of process; here it is a single blocking call that
// either yields a signed confirmation or fails with a tagged error, so the
// checkout state machine stays linear.
package widget

import (
	"context"
	"errors"

	"logomarket/internal/domain"
)

var (
	// ErrCancelled: the user dismissed the widget. Not a failure.
	ErrCancelled = errors.New("payment cancelled")
	// ErrDeclined: the processor explicitly refused the payment.
	ErrDeclined = errors.New("payment declined")
	// ErrUnavailable: the widget client library could not be loaded.
	ErrUnavailable = errors.New("payment widget unavailable")
)

// Widget collects a payment for an already-minted order. Collect blocks
// until the user finishes, dismisses, or the processor declines.
type Widget interface {
	Collect(ctx context.Context, order domain.Order) (domain.PaymentConfirmation, error)
}
