// File: internal/checkout/orchestrator.go
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"clinic-payments/internal/domain"
	"clinic-payments/internal/domain/model"
)

// Orchestrator drives a checkout attempt end to end: script load, order
// creation, widget, then server-side verification. A purchase is only
// Confirmed after the verification endpoint says the callback is authentic;
// nothing the widget reports is trusted on its own.
type Orchestrator struct {
	loader *ScriptLoader
	api    *APIClient
	widget Widget
	keyID  string
	name   string // merchant display name shown in the widget
	log    *zerolog.Logger
}

func NewOrchestrator(loader *ScriptLoader, api *APIClient, widget Widget, keyID, displayName string, logger *zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		loader: loader,
		api:    api,
		widget: widget,
		keyID:  keyID,
		name:   displayName,
		log:    logger,
	}
}

// run is one instance of the checkout state machine. Terminal states are
// final; Pay builds a fresh run per attempt so a prior order is never reused.
type run struct {
	state State
	log   *zerolog.Logger
}

func (r *run) to(s State) {
	r.log.Debug().Str("from", r.state.String()).Str("to", s.String()).Msg("checkout transition")
	r.state = s
}

// Pay executes a full checkout attempt for amountMinorUnits. It returns the
// verified completion triple, or one of the domain errors: ErrScriptLoad,
// ErrInvalidAmount, ErrGateway, ErrCancelled, ErrSignatureMismatch,
// ErrTimeout (context expiry).
func (o *Orchestrator) Pay(ctx context.Context, amountMinorUnits int64, prefill model.Prefill) (*model.CheckoutResult, error) {
	r := &run{state: StateIdle, log: o.log}

	r.to(StateScriptLoading)
	if _, err := o.loader.Load(ctx); err != nil {
		r.to(StateFailed)
		return nil, err
	}

	r.to(StateAwaitingGatewayOrder)
	order, err := o.api.CreateOrder(ctx, amountMinorUnits)
	if err != nil {
		r.to(StateFailed)
		return nil, err
	}

	completeCh := make(chan Completion, 1)
	dismissCh := make(chan struct{}, 1)

	// Callbacks are registered only now, with a valid order id in hand, so
	// verification can never run ahead of order creation.
	opts := WidgetOptions{
		KeyID:       o.keyID,
		OrderID:     order.ID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        o.name,
		Description: "Order " + order.Receipt,
		Prefill:     prefill,
		OnComplete:  func(c Completion) { completeCh <- c },
		OnDismiss:   func() { dismissCh <- struct{}{} },
	}

	r.to(StateWidgetOpen)
	if err := o.widget.Open(ctx, opts); err != nil {
		r.to(StateFailed)
		return nil, fmt.Errorf("open checkout widget: %w", err)
	}

	var completion Completion
	select {
	case <-ctx.Done():
		r.to(StateFailed)
		return nil, fmt.Errorf("%w: %v", domain.ErrTimeout, ctx.Err())
	case <-dismissCh:
		r.to(StateCancelled)
		return nil, domain.ErrCancelled
	case completion = <-completeCh:
	}

	r.to(StateAwaitingVerification)
	ok, msg, err := o.api.VerifyPayment(ctx, completion.OrderID, completion.PaymentID, completion.Signature)
	if err != nil {
		r.to(StateFailed)
		return nil, err
	}
	if !ok {
		r.to(StateFailed)
		return nil, fmt.Errorf("%w: %s", domain.ErrSignatureMismatch, msg)
	}

	r.to(StateConfirmed)
	o.log.Info().Str("order_id", completion.OrderID).Msg("checkout confirmed")
	return &model.CheckoutResult{
		OrderID:   completion.OrderID,
		PaymentID: completion.PaymentID,
		Signature: completion.Signature,
	}, nil
}

// IsCancelled distinguishes a buyer closing the widget from a failure, so
// callers can offer "try again" without alarming copy.
func IsCancelled(err error) bool {
	return errors.Is(err, domain.ErrCancelled)
}
