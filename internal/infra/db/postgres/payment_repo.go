package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"clinic-payments/internal/domain"
	"clinic-payments/internal/domain/model"
	"clinic-payments/internal/domain/ports/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo is the Postgres audit store for orders and their verification
// outcomes. Schema:
//
//	CREATE TABLE payments (
//	  id          TEXT PRIMARY KEY,
//	  order_id    TEXT UNIQUE NOT NULL,
//	  payment_id  TEXT,
//	  provider    TEXT NOT NULL,
//	  amount      BIGINT NOT NULL,
//	  currency    TEXT NOT NULL,
//	  receipt     TEXT NOT NULL,
//	  status      TEXT NOT NULL,
//	  created_at  TIMESTAMPTZ NOT NULL,
//	  updated_at  TIMESTAMPTZ NOT NULL
//	);
type PaymentRepo struct{ pool *pgxpool.Pool }

func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// Save inserts or updates a payment record, keyed by gateway order id.
func (r *PaymentRepo) Save(ctx context.Context, rec *model.PaymentRecord) error {
	const q = `
INSERT INTO payments (id, order_id, payment_id, provider, amount, currency, receipt, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (order_id) DO UPDATE SET
  payment_id = EXCLUDED.payment_id,
  status     = EXCLUDED.status,
  updated_at = EXCLUDED.updated_at;`

	_, err := r.pool.Exec(ctx, q,
		rec.ID,
		rec.OrderID,
		rec.PaymentID,
		rec.Provider,
		rec.Amount,
		rec.Currency,
		rec.Receipt,
		string(rec.Status),
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres save payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) UpdateStatus(ctx context.Context, orderID string, status model.PaymentStatus, paymentID string) error {
	const q = `
UPDATE payments SET
  status = $2,
  payment_id = COALESCE(NULLIF($3, ''), payment_id),
  updated_at = $4
WHERE order_id = $1;`

	tag, err := r.pool.Exec(ctx, q, orderID, string(status), paymentID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PaymentRepo) FindByOrderID(ctx context.Context, orderID string) (*model.PaymentRecord, error) {
	const q = `
SELECT id, order_id, COALESCE(payment_id, ''), provider, amount, currency, receipt, status, created_at, updated_at
FROM payments
WHERE order_id = $1;`

	rec := &model.PaymentRecord{}
	var status string
	row := r.pool.QueryRow(ctx, q, orderID)
	if err := row.Scan(&rec.ID, &rec.OrderID, &rec.PaymentID, &rec.Provider, &rec.Amount, &rec.Currency, &rec.Receipt, &status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postgres find payment by order id: %w", err)
	}
	rec.Status = model.PaymentStatus(status)
	return rec, nil
}
