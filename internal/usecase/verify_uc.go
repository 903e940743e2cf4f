// File: internal/usecase/verify_uc.go
package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"clinic-payments/internal/domain"
	"clinic-payments/internal/domain/model"
	"clinic-payments/internal/domain/ports/repository"
	"clinic-payments/internal/infra/logging"
	"clinic-payments/internal/infra/metrics"
	"clinic-payments/internal/infra/security"
)

// Compile-time check
var _ VerificationUseCase = (*verifyUC)(nil)

type VerificationUseCase interface {
	// Verify decides whether a completed-checkout triple is authentic. The
	// decision is binary and fail-closed: anything short of an exact HMAC
	// match is not authentic.
	Verify(ctx context.Context, orderID, paymentID, signature string) (*model.VerificationResult, error)
}

type verifyUC struct {
	keySecret string
	payments  repository.PaymentRepository // optional audit store; may be nil
	log       *zerolog.Logger
}

func NewVerificationUseCase(keySecret string, payments repository.PaymentRepository, logger *zerolog.Logger) *verifyUC {
	return &verifyUC{keySecret: keySecret, payments: payments, log: logger}
}

func (u *verifyUC) Verify(ctx context.Context, orderID, paymentID, signature string) (*model.VerificationResult, error) {
	defer logging.TraceDuration(u.log, "VerifyUC.Verify")()

	if orderID == "" || paymentID == "" || signature == "" {
		return nil, domain.ErrMissingParameters
	}

	// Canonical message per the gateway's signing contract.
	message := orderID + "|" + paymentID
	authentic := security.VerifySignature(u.keySecret, message, signature)

	if !authentic {
		u.markStatus(ctx, orderID, model.PaymentStatusFailed, "")
		u.log.Warn().
			Str("order_id", orderID).
			Str("payment_id", logging.Redact(paymentID, false)).
			Msg("payment signature rejected")
		return &model.VerificationResult{Authentic: false, Reason: domain.ErrSignatureMismatch.Error()}, nil
	}

	u.markStatus(ctx, orderID, model.PaymentStatusVerified, paymentID)
	u.log.Info().
		Str("order_id", orderID).
		Str("payment_id", logging.Redact(paymentID, false)).
		Msg("payment verified")
	return &model.VerificationResult{Authentic: true}, nil
}

// markStatus updates the audit record when a store is configured. Verification
// itself is a pure local computation; audit failures are logged, never fatal.
func (u *verifyUC) markStatus(ctx context.Context, orderID string, status model.PaymentStatus, paymentID string) {
	if u.payments == nil {
		return
	}
	if err := u.payments.UpdateStatus(ctx, orderID, status, paymentID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			u.log.Warn().Err(err).Str("order_id", orderID).Msg("payment audit update failed")
		}
		return
	}
	if status == model.PaymentStatusVerified {
		if rec, err := u.payments.FindByOrderID(ctx, orderID); err == nil {
			metrics.AddPaymentRevenue(rec.Currency, rec.Amount)
		}
	}
}
