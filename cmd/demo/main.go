// File: cmd/demo/main.go
//
// Runs one full checkout round-trip against an in-process payment server
// using the in-memory gateway: create order -> widget completion -> verify.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rs/zerolog"

	"clinic-payments/internal/checkout"
	"clinic-payments/internal/domain/model"
	payAdapters "clinic-payments/internal/infra/adapters/payment"
	"clinic-payments/internal/infra/metrics"
	"clinic-payments/internal/infra/security"
	"clinic-payments/internal/infra/web"
	"clinic-payments/internal/usecase"
)

// scriptedWidget approves or dismisses the checkout without user interaction.
type scriptedWidget struct {
	secret  string
	dismiss bool
}

func (w *scriptedWidget) Open(ctx context.Context, opts checkout.WidgetOptions) error {
	go func() {
		time.Sleep(100 * time.Millisecond) // a very fast buyer
		if w.dismiss {
			opts.OnDismiss()
			return
		}
		paymentID := fmt.Sprintf("pay_demo%d", time.Now().Unix())
		sig := security.Sign(w.secret, opts.OrderID+"|"+paymentID)
		opts.OnComplete(checkout.Completion{OrderID: opts.OrderID, PaymentID: paymentID, Signature: sig})
	}()
	return nil
}

func main() {
	amount := flag.Int64("amount", 50000, "amount in minor units (paise)")
	dismiss := flag.Bool("dismiss", false, "simulate the buyer closing the widget")
	secret := flag.String("secret", "demo-key-secret", "signing secret shared by server and scripted gateway")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: log.Writer()}).With().Timestamp().Logger()
	metrics.MustRegister()

	orderUC := usecase.NewOrderUseCase(payAdapters.NewNoopPaymentGateway(), nil, "INR", &logger)
	verifyUC := usecase.NewVerificationUseCase(*secret, nil, &logger)
	router := web.NewServer(orderUC, verifyUC, nil, 0, &logger).Router()

	mux := http.NewServeMux()
	mux.HandleFunc("/checkout.js", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("// checkout widget stub"))
	})
	mux.Handle("/", router)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	loader := checkout.NewScriptLoader(srv.URL + "/checkout.js")
	api := checkout.NewAPIClient(srv.URL)
	widget := &scriptedWidget{secret: *secret, dismiss: *dismiss}
	orch := checkout.NewOrchestrator(loader, api, widget, "rzp_demo_key", "City Clinic Pharmacy", &logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	prefill := model.Prefill{Name: "Demo Buyer", Email: "buyer@example.com", Contact: "9999999999"}
	res, err := orch.Pay(ctx, *amount, prefill)
	if err != nil {
		if checkout.IsCancelled(err) {
			fmt.Println("checkout cancelled by buyer; safe to offer a retry")
			return
		}
		log.Fatalf("checkout failed: %v", err)
	}
	fmt.Printf("payment confirmed: order=%s payment=%s\n", res.OrderID, res.PaymentID)
}
