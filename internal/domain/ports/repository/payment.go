package repository

import (
	"context"

	"clinic-payments/internal/domain/model"
)

// PaymentRepository is the optional audit store for orders and their
// verification outcomes. A nil repository is a supported deployment; the
// use cases only write through it when one is configured.
type PaymentRepository interface {
	Save(ctx context.Context, rec *model.PaymentRecord) error
	// UpdateStatus transitions the record for orderID and, on verification,
	// attaches the gateway payment id.
	UpdateStatus(ctx context.Context, orderID string, status model.PaymentStatus, paymentID string) error
	FindByOrderID(ctx context.Context, orderID string) (*model.PaymentRecord, error)
}
