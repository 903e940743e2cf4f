// File: internal/usecase/order_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"clinic-payments/internal/domain"
	"clinic-payments/internal/domain/model"
	"clinic-payments/internal/domain/ports/adapter"
	"clinic-payments/internal/domain/ports/repository"
	"clinic-payments/internal/infra/logging"
	"clinic-payments/internal/infra/metrics"
)

// Compile-time check
var _ OrderUseCase = (*orderUC)(nil)

type OrderUseCase interface {
	// Create validates the requested amount and registers exactly one order
	// with the gateway. One order per checkout attempt; retries get a fresh
	// order so a stale amount can never be charged.
	Create(ctx context.Context, amountMinorUnits int64) (*model.Order, error)
}

type orderUC struct {
	gateway  adapter.PaymentGateway
	payments repository.PaymentRepository // optional audit store; may be nil
	currency string
	log      *zerolog.Logger
}

func NewOrderUseCase(gateway adapter.PaymentGateway, payments repository.PaymentRepository, currency string, logger *zerolog.Logger) *orderUC {
	return &orderUC{gateway: gateway, payments: payments, currency: currency, log: logger}
}

func (u *orderUC) Create(ctx context.Context, amountMinorUnits int64) (*model.Order, error) {
	defer logging.TraceDuration(u.log, "OrderUC.Create")()

	if amountMinorUnits <= 0 {
		metrics.IncOrder("invalid_amount")
		return nil, fmt.Errorf("%w: amount must be a positive integer in minor units", domain.ErrInvalidAmount)
	}

	// Receipt labels are timestamp-derived (ULID), monotonic within the
	// process. Uniqueness here is a bookkeeping hint, not a guarantee.
	receipt := "rcpt_" + ulid.Make().String()

	start := time.Now()
	order, err := u.gateway.CreateOrder(ctx, amountMinorUnits, u.currency, receipt)
	if err != nil {
		metrics.IncOrder("gateway_error")
		metrics.ObserveOrderCreate("fail", time.Since(start).Seconds())
		u.log.Error().Err(err).Int64("amount", amountMinorUnits).Msg("order creation failed")
		return nil, fmt.Errorf("create order: %w", err)
	}
	metrics.IncOrder("created")
	metrics.ObserveOrderCreate("ok", time.Since(start).Seconds())

	if u.payments != nil {
		now := time.Now()
		rec := &model.PaymentRecord{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			Provider:  u.gateway.Name(),
			Amount:    order.Amount,
			Currency:  order.Currency,
			Receipt:   order.Receipt,
			Status:    model.PaymentStatusCreated,
			CreatedAt: now,
			UpdatedAt: now,
		}
		// The order already exists gateway-side; a failed audit write must
		// not fail the checkout.
		if err := u.payments.Save(ctx, rec); err != nil {
			u.log.Warn().Err(err).Str("order_id", order.ID).Msg("payment audit save failed")
		}
	}

	u.log.Info().Str("order_id", order.ID).Int64("amount", order.Amount).Str("currency", order.Currency).Msg("order created")
	return order, nil
}
