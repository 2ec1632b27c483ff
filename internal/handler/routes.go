package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Amaral-Gabriel/daily-loan-pay/pkg/response"
)

// Handlers groups everything NewRouter mounts
type Handlers struct {
	Loans   *LoanHandler
	Webhook *WebhookHandler
	Health  *HealthHandler
}

// NewRouter wires the routes. authenticate guards the borrower facing routes;
// the webhook stays open to the payment network.
func NewRouter(h Handlers, authenticate mux.MiddlewareFunc, logger *slog.Logger) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "route not found")
	})

	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/webhooks/payment-confirmation", h.Webhook.ConfirmPayment).Methods(http.MethodPost)

	loans := api.PathPrefix("/loans").Subrouter()
	loans.Use(authenticate)
	loans.HandleFunc("/{loanId}", h.Loans.GetLoanDetails).Methods(http.MethodGet)
	loans.HandleFunc("/{loanId}/daily-charge", h.Loans.GenerateDailyCharge).Methods(http.MethodPost)
	loans.HandleFunc("/{loanId}/daily-charge", h.Loans.GetDailyChargeStatus).Methods(http.MethodGet)
	loans.HandleFunc("/{loanId}/payments", h.Loans.GetPaymentHistory).Methods(http.MethodGet)

	// CORS sits outside the router so preflight requests never reach method matching
	return response.LoggingMiddleware(logger)(response.CORSMiddleware(router))
}
