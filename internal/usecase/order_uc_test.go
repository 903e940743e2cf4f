//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"clinic-payments/internal/domain"
	"clinic-payments/internal/domain/model"
	"clinic-payments/internal/usecase"
)

func TestOrderUseCase_Create(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("should create an order whose amount equals the input", func(t *testing.T) {
		// --- Arrange ---
		gateway := &MockPaymentGateway{}
		repo := NewMockPaymentRepo()
		uc := usecase.NewOrderUseCase(gateway, repo, "INR", testLogger)

		// --- Act ---
		order, err := uc.Create(ctx, 50000)

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if order.Amount != 50000 {
			t.Errorf("expected amount 50000, but got %d", order.Amount)
		}
		if order.Currency != "INR" {
			t.Errorf("expected currency INR, but got %s", order.Currency)
		}
		if !strings.HasPrefix(order.Receipt, "rcpt_") {
			t.Errorf("expected a rcpt_ receipt label, but got %q", order.Receipt)
		}
		rec, err := repo.FindByOrderID(ctx, order.ID)
		if err != nil {
			t.Fatal("expected an audit record to be saved")
		}
		if rec.Status != model.PaymentStatusCreated {
			t.Errorf("expected audit status 'created', but got '%s'", rec.Status)
		}
	})

	t.Run("should reject non-positive amounts without calling the gateway", func(t *testing.T) {
		gateway := &MockPaymentGateway{}
		uc := usecase.NewOrderUseCase(gateway, nil, "INR", testLogger)

		for _, amount := range []int64{0, -1, -50000} {
			_, err := uc.Create(ctx, amount)
			if !errors.Is(err, domain.ErrInvalidAmount) {
				t.Errorf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
			}
		}
		if gateway.Calls() != 0 {
			t.Errorf("expected no gateway calls, got %d", gateway.Calls())
		}
	})

	t.Run("should generate a fresh receipt per attempt", func(t *testing.T) {
		gateway := &MockPaymentGateway{}
		var receipts []string
		gateway.CreateOrderFunc = func(ctx context.Context, amount int64, currency, receipt string) (*model.Order, error) {
			receipts = append(receipts, receipt)
			return &model.Order{ID: "order_x", Amount: amount, Currency: currency, Receipt: receipt}, nil
		}
		uc := usecase.NewOrderUseCase(gateway, nil, "INR", testLogger)

		for i := 0; i < 3; i++ {
			if _, err := uc.Create(ctx, 100); err != nil {
				t.Fatalf("create %d: %v", i, err)
			}
		}
		seen := map[string]bool{}
		for _, r := range receipts {
			if seen[r] {
				t.Fatalf("receipt %q reused across attempts", r)
			}
			seen[r] = true
		}
	})

	t.Run("should wrap gateway failures with ErrGateway", func(t *testing.T) {
		gateway := &MockPaymentGateway{}
		gateway.CreateOrderFunc = func(ctx context.Context, amount int64, currency, receipt string) (*model.Order, error) {
			return nil, domain.ErrGateway
		}
		uc := usecase.NewOrderUseCase(gateway, nil, "INR", testLogger)

		_, err := uc.Create(ctx, 100)
		if !errors.Is(err, domain.ErrGateway) {
			t.Fatalf("expected ErrGateway, got %v", err)
		}
	})

	t.Run("should not fail the checkout when the audit save fails", func(t *testing.T) {
		gateway := &MockPaymentGateway{}
		repo := NewMockPaymentRepo()
		repo.SaveFunc = func(ctx context.Context, rec *model.PaymentRecord) error {
			return errors.New("db down")
		}
		uc := usecase.NewOrderUseCase(gateway, repo, "INR", testLogger)

		order, err := uc.Create(ctx, 100)
		if err != nil {
			t.Fatalf("expected order despite audit failure, got %v", err)
		}
		if order == nil || order.ID == "" {
			t.Fatal("expected a created order")
		}
	})
}
