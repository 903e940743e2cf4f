package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clinic-payments/internal/domain/model"
	"clinic-payments/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*NoopPaymentGateway)(nil)

// NoopPaymentGateway is a simple in-memory gateway for dev mode and tests.
type NoopPaymentGateway struct {
	mu     sync.Mutex
	seq    int64
	orders map[string]*model.Order
}

func NewNoopPaymentGateway() *NoopPaymentGateway {
	return &NoopPaymentGateway{orders: make(map[string]*model.Order)}
}

func (g *NoopPaymentGateway) Name() string { return "noop" }

func (g *NoopPaymentGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (*model.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	o := &model.Order{
		ID:        fmt.Sprintf("order_noop%d", g.seq),
		Amount:    amountMinorUnits,
		Currency:  currency,
		Receipt:   receipt,
		Status:    "created",
		CreatedAt: time.Now().Unix(),
	}
	g.orders[o.ID] = o
	return o, nil
}

// FindOrder is a test helper; the real gateway owns its orders.
func (g *NoopPaymentGateway) FindOrder(id string) (*model.Order, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	o, ok := g.orders[id]
	return o, ok
}
