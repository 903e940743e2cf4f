package checkout

import (
	"context"

	"clinic-payments/internal/domain/model"
)

// Completion is the triple the gateway hands to the completion callback.
type Completion struct {
	OrderID   string
	PaymentID string
	Signature string
}

// WidgetOptions pre-fills the hosted checkout widget. OnComplete and
// OnDismiss are registered before the widget opens; the gateway invokes
// exactly one of them per attempt.
type WidgetOptions struct {
	KeyID       string // public gateway key, safe to expose
	OrderID     string
	Amount      int64
	Currency    string
	Name        string
	Description string
	Prefill     model.Prefill
	OnComplete  func(Completion)
	OnDismiss   func()
}

// Widget abstracts the gateway's hosted checkout surface. Open returns once
// the widget is presented; payment completion arrives via the callbacks.
type Widget interface {
	Open(ctx context.Context, opts WidgetOptions) error
}
