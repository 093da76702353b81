package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"logomarket/internal/domain"
	"logomarket/internal/signature"
)

// Verifier decides whether a payment confirmation is authentic. The checkout
// flow depends on this interface; the production client implementation calls
// the verify endpoint, so the shared secret never leaves the server.
type Verifier interface {
	VerifyPayment(ctx context.Context, conf domain.PaymentConfirmation) (domain.VerificationResult, error)
}

type verifyService struct {
	secret string
	log    *zap.Logger
}

// NewVerifyService builds the server-side verifier. This is the only code
// path allowed to declare a payment authentic.
func NewVerifyService(secret string, log *zap.Logger) Verifier {
	return &verifyService{secret: secret, log: log}
}

func (s *verifyService) VerifyPayment(_ context.Context, conf domain.PaymentConfirmation) (domain.VerificationResult, error) {
	if conf.OrderID == "" || conf.PaymentID == "" || conf.Signature == "" {
		return domain.VerificationResult{}, fmt.Errorf("%w: missing payment verification data", ErrValidation)
	}
	if s.secret == "" {
		return domain.VerificationResult{}, ErrNotConfigured
	}

	authentic := signature.Verify(conf.OrderID, conf.PaymentID, conf.Signature, s.secret)
	if !authentic {
		// Both digests are logged for audit; neither reaches the client.
		s.log.Warn("payment signature mismatch",
			zap.String("order_id", conf.OrderID),
			zap.String("payment_id", conf.PaymentID),
			zap.String("expected_signature", signature.Expected(conf.OrderID, conf.PaymentID, s.secret)),
			zap.String("received_signature", conf.Signature),
		)
	}

	return domain.VerificationResult{
		Authentic: authentic,
		PaymentID: conf.PaymentID,
	}, nil
}
