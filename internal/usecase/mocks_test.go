// File: internal/usecase/mocks_test.go
package usecase_test

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"clinic-payments/internal/domain"
	"clinic-payments/internal/domain/model"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// MockPaymentGateway records calls and lets tests script order creation.
type MockPaymentGateway struct {
	mu              sync.Mutex
	CreateOrderFunc func(ctx context.Context, amount int64, currency, receipt string) (*model.Order, error)
	calls           int
}

func (m *MockPaymentGateway) Name() string { return "mock" }

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*model.Order, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amount, currency, receipt)
	}
	return &model.Order{ID: "order_mock1", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (m *MockPaymentGateway) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockPaymentRepo is a small in-memory audit store used by unit tests.
type MockPaymentRepo struct {
	mu       sync.RWMutex
	store    map[string]*model.PaymentRecord // keyed by gateway order id
	SaveFunc func(ctx context.Context, rec *model.PaymentRecord) error
}

func NewMockPaymentRepo() *MockPaymentRepo {
	return &MockPaymentRepo{store: make(map[string]*model.PaymentRecord)}
}

func (m *MockPaymentRepo) Save(ctx context.Context, rec *model.PaymentRecord) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.store[rec.OrderID] = &cp
	return nil
}

func (m *MockPaymentRepo) UpdateStatus(ctx context.Context, orderID string, status model.PaymentStatus, paymentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.store[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Status = status
	if paymentID != "" {
		rec.PaymentID = paymentID
	}
	return nil
}

func (m *MockPaymentRepo) FindByOrderID(ctx context.Context, orderID string) (*model.PaymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.store[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}
