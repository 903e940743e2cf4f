//go:build !integration

package checkout_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"clinic-payments/internal/checkout"
	"clinic-payments/internal/domain"
	"clinic-payments/internal/domain/model"
	payadapter "clinic-payments/internal/infra/adapters/payment"
	"clinic-payments/internal/infra/security"
	"clinic-payments/internal/infra/web"
	"clinic-payments/internal/usecase"
)

const testSecret = "test-key-secret"

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// fakeWidget plays the gateway's hosted checkout. Scripted per test: it either
// completes with a signature derived from signSecret, or dismisses.
type fakeWidget struct {
	signSecret string
	dismiss    bool
	opens      int32
	lastOpts   checkout.WidgetOptions
}

func (f *fakeWidget) Open(ctx context.Context, opts checkout.WidgetOptions) error {
	atomic.AddInt32(&f.opens, 1)
	f.lastOpts = opts
	go func() {
		if f.dismiss {
			opts.OnDismiss()
			return
		}
		paymentID := "pay_XYZ789"
		sig := security.Sign(f.signSecret, opts.OrderID+"|"+paymentID)
		opts.OnComplete(checkout.Completion{OrderID: opts.OrderID, PaymentID: paymentID, Signature: sig})
	}()
	return nil
}

// testBackend wires the real router against the in-memory gateway, plus a
// fake script endpoint, and counts verify-payment hits.
type testBackend struct {
	srv         *httptest.Server
	scriptHits  int32
	verifyCalls int32
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{}
	logger := newTestLogger()
	orderUC := usecase.NewOrderUseCase(payadapter.NewNoopPaymentGateway(), nil, "INR", logger)
	verifyUC := usecase.NewVerificationUseCase(testSecret, nil, logger)
	router := web.NewServer(orderUC, verifyUC, nil, 0, logger).Router()

	mux := http.NewServeMux()
	mux.HandleFunc("/checkout.js", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.scriptHits, 1)
		w.Write([]byte("// widget"))
	})
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/payment/verify-payment" {
			atomic.AddInt32(&b.verifyCalls, 1)
		}
		router.ServeHTTP(w, r)
	}))
	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *testBackend) orchestrator(widget checkout.Widget) (*checkout.Orchestrator, *checkout.ScriptLoader) {
	loader := checkout.NewScriptLoader(b.srv.URL + "/checkout.js")
	api := checkout.NewAPIClient(b.srv.URL)
	return checkout.NewOrchestrator(loader, api, widget, "rzp_test_key", "City Clinic Pharmacy", newTestLogger()), loader
}

func TestOrchestrator_Pay(t *testing.T) {
	ctx := context.Background()
	prefill := model.Prefill{Name: "Asha", Email: "asha@example.com", Contact: "9999999999"}

	t.Run("confirms a correctly signed checkout", func(t *testing.T) {
		backend := newTestBackend(t)
		widget := &fakeWidget{signSecret: testSecret}
		orch, _ := backend.orchestrator(widget)

		res, err := orch.Pay(ctx, 50000, prefill)
		if err != nil {
			t.Fatalf("expected confirmed checkout, got: %v", err)
		}
		if res.OrderID == "" || res.PaymentID == "" || res.Signature == "" {
			t.Errorf("expected full completion triple, got %+v", res)
		}
		if widget.lastOpts.Amount != 50000 {
			t.Errorf("widget opened with amount %d, want 50000", widget.lastOpts.Amount)
		}
		if widget.lastOpts.Prefill != prefill {
			t.Errorf("widget opened with prefill %+v", widget.lastOpts.Prefill)
		}
	})

	t.Run("fails when the signature comes from the wrong secret", func(t *testing.T) {
		backend := newTestBackend(t)
		widget := &fakeWidget{signSecret: "wrong-secret"}
		orch, _ := backend.orchestrator(widget)

		_, err := orch.Pay(ctx, 50000, prefill)
		if !errors.Is(err, domain.ErrSignatureMismatch) {
			t.Fatalf("expected ErrSignatureMismatch, got %v", err)
		}
	})

	t.Run("dismissal cancels without calling verify-payment", func(t *testing.T) {
		backend := newTestBackend(t)
		widget := &fakeWidget{dismiss: true}
		orch, _ := backend.orchestrator(widget)

		_, err := orch.Pay(ctx, 50000, prefill)
		if !errors.Is(err, domain.ErrCancelled) {
			t.Fatalf("expected ErrCancelled, got %v", err)
		}
		if !checkout.IsCancelled(err) {
			t.Error("IsCancelled must report true for a dismissal")
		}
		if n := atomic.LoadInt32(&backend.verifyCalls); n != 0 {
			t.Errorf("expected no verify-payment calls after dismissal, got %d", n)
		}
	})

	t.Run("rejects an invalid amount before opening the widget", func(t *testing.T) {
		backend := newTestBackend(t)
		widget := &fakeWidget{signSecret: testSecret}
		orch, _ := backend.orchestrator(widget)

		_, err := orch.Pay(ctx, 0, prefill)
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if atomic.LoadInt32(&widget.opens) != 0 {
			t.Error("widget must not open when order creation fails")
		}
	})

	t.Run("caller timeout while the widget is open maps to ErrTimeout", func(t *testing.T) {
		backend := newTestBackend(t)
		// A widget that never completes nor dismisses.
		widget := widgetFunc(func(ctx context.Context, opts checkout.WidgetOptions) error { return nil })
		orch, _ := backend.orchestrator(widget)

		shortCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := orch.Pay(shortCtx, 50000, prefill)
		if !errors.Is(err, domain.ErrTimeout) {
			t.Fatalf("expected ErrTimeout, got %v", err)
		}
	})

	t.Run("loads the checkout script exactly once across attempts", func(t *testing.T) {
		backend := newTestBackend(t)
		widget := &fakeWidget{signSecret: testSecret}
		orch, loader := backend.orchestrator(widget)

		for i := 0; i < 3; i++ {
			if _, err := orch.Pay(ctx, 100, prefill); err != nil {
				t.Fatalf("attempt %d: %v", i, err)
			}
		}
		if hits := atomic.LoadInt32(&backend.scriptHits); hits != 1 {
			t.Errorf("expected 1 script fetch, got %d", hits)
		}
		if !loader.Loaded() {
			t.Error("loader should report loaded")
		}
	})

	t.Run("script load failure fails the attempt", func(t *testing.T) {
		backend := newTestBackend(t)
		widget := &fakeWidget{signSecret: testSecret}
		loader := checkout.NewScriptLoader(backend.srv.URL + "/missing.js")
		api := checkout.NewAPIClient(backend.srv.URL)
		orch := checkout.NewOrchestrator(loader, api, widget, "rzp_test_key", "City Clinic Pharmacy", newTestLogger())

		_, err := orch.Pay(ctx, 100, prefill)
		if !errors.Is(err, domain.ErrScriptLoad) {
			t.Fatalf("expected ErrScriptLoad, got %v", err)
		}
		if atomic.LoadInt32(&widget.opens) != 0 {
			t.Error("widget must not open when the script fails to load")
		}
	})
}

type widgetFunc func(ctx context.Context, opts checkout.WidgetOptions) error

func (f widgetFunc) Open(ctx context.Context, opts checkout.WidgetOptions) error {
	return f(ctx, opts)
}
