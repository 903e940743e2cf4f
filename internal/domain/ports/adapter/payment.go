package adapter

import (
	"context"

	"clinic-payments/internal/domain/model"
)

// PaymentGateway is the hex port for payment providers.
//
// CreateOrder performs the authenticated server-to-server call that registers
// a payment intent with the provider. Credentials live inside the adapter and
// are never handed to callers.
type PaymentGateway interface {
	Name() string

	CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (*model.Order, error)
}
