package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"clinic-payments/internal/domain"
	"clinic-payments/internal/infra/logging"
	"clinic-payments/internal/infra/metrics"
	"clinic-payments/internal/usecase"

	"github.com/rs/zerolog"
)

// Wire shapes for the two payment routes. Field names mirror what the
// gateway's client callback produces, so they are fixed.
type createOrderRequest struct {
	Amount json.Number `json:"amount"`
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Handler for creating a gateway order.
func createOrderHandler(orderUC usecase.OrderUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// json.Number rejects non-numeric amounts (e.g. "abc") at decode
		// time, and Int64 rejects fractional values. Both are client errors.
		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid amount"})
			return
		}
		amount, err := req.Amount.Int64()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid amount"})
			return
		}

		order, err := orderUC.Create(ctx, amount)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidAmount) {
				writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid amount"})
				return
			}
			logging.With(ctx, logger).Error().Err(err).Msg("create order failed")
			writeJSON(w, http.StatusInternalServerError, messageResponse{Message: fmt.Sprintf("Failed to create order: %v", err)})
			return
		}

		writeJSON(w, http.StatusOK, order)
	}
}

// Handler for verifying a completed checkout callback.
func verifyPaymentHandler(verifyUC usecase.VerificationUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()
		observe := func(result, reason string) {
			metrics.PaymentVerifyRequests.WithLabelValues(result, reason).Inc()
			metrics.PaymentVerifyDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}

		var req verifyPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			observe("fail", "bad_json")
			writeJSON(w, http.StatusBadRequest, verifyResponse{Success: false, Message: "Missing payment verification parameters"})
			return
		}

		res, err := verifyUC.Verify(ctx, req.OrderID, req.PaymentID, req.Signature)
		if err != nil {
			if errors.Is(err, domain.ErrMissingParameters) {
				observe("fail", "missing_params")
				writeJSON(w, http.StatusBadRequest, verifyResponse{Success: false, Message: "Missing payment verification parameters"})
				return
			}
			observe("fail", "internal")
			logging.With(ctx, logger).Error().Err(err).Msg("verify payment failed")
			writeJSON(w, http.StatusInternalServerError, verifyResponse{Success: false, Message: fmt.Sprintf("Internal server error: %v", err)})
			return
		}

		if !res.Authentic {
			observe("fail", "mismatch")
			writeJSON(w, http.StatusBadRequest, verifyResponse{Success: false, Message: "Payment verification failed"})
			return
		}

		observe("ok", "none")
		writeJSON(w, http.StatusOK, verifyResponse{Success: true, Message: "Payment verified successfully"})
	}
}
