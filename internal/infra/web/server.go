package web

import (
	"net/http"
	"time"

	"clinic-payments/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	orderUC  usecase.OrderUseCase
	verifyUC usecase.VerificationUseCase
	limiter  Limiter // optional; nil disables rate limiting
	perMin   int
	log      *zerolog.Logger
}

func NewServer(
	orderUC usecase.OrderUseCase,
	verifyUC usecase.VerificationUseCase,
	limiter Limiter,
	perMinute int,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		orderUC:  orderUC,
		verifyUC: verifyUC,
		limiter:  limiter,
		perMin:   perMinute,
		log:      logger,
	}
}

// Router assembles the HTTP surface. The two payment routes carry the
// correctness contract; everything else is operational plumbing.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(TraceID())
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(Timeout(15 * time.Second))
		if s.limiter != nil {
			r.Use(RateLimit(s.limiter, s.perMin, s.log))
		}
		r.Post("/payment/create-order", createOrderHandler(s.orderUC, s.log))
		r.Post("/payment/verify-payment", verifyPaymentHandler(s.verifyUC, s.log))
	})

	return r
}
