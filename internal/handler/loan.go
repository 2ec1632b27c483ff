package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/middleware"
	"github.com/Amaral-Gabriel/daily-loan-pay/pkg/response"
)

type LoanHandler struct {
	service ChargeService
	logger  *slog.Logger
}

func NewLoanHandler(service ChargeService, logger *slog.Logger) *LoanHandler {
	return &LoanHandler{
		service: service,
		logger:  logger,
	}
}

// request pulls the loan id and caller identity shared by every loan route
func (h *LoanHandler) request(w http.ResponseWriter, r *http.Request) (uuid.UUID, domain.Identity, bool) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return uuid.Nil, domain.Identity{}, false
	}

	loanID, err := uuid.Parse(mux.Vars(r)["loanId"])
	if err != nil {
		response.BadRequest(w, "INVALID_LOAN_ID", "loanId must be a UUID")
		return uuid.Nil, domain.Identity{}, false
	}

	return loanID, identity, true
}

// GenerateDailyCharge handles POST /api/v1/loans/{loanId}/daily-charge
func (h *LoanHandler) GenerateDailyCharge(w http.ResponseWriter, r *http.Request) {
	loanID, identity, ok := h.request(w, r)
	if !ok {
		return
	}

	charge, err := h.service.GenerateDailyCharge(r.Context(), loanID, identity)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Created(w, domain.DailyChargeResponse{LoanID: loanID, Charge: charge})
}

// GetDailyChargeStatus handles GET /api/v1/loans/{loanId}/daily-charge
func (h *LoanHandler) GetDailyChargeStatus(w http.ResponseWriter, r *http.Request) {
	loanID, identity, ok := h.request(w, r)
	if !ok {
		return
	}

	charge, err := h.service.GetDailyChargeStatus(r.Context(), loanID, identity)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, domain.DailyChargeResponse{LoanID: loanID, Charge: charge})
}

// GetLoanDetails handles GET /api/v1/loans/{loanId}
func (h *LoanHandler) GetLoanDetails(w http.ResponseWriter, r *http.Request) {
	loanID, identity, ok := h.request(w, r)
	if !ok {
		return
	}

	details, err := h.service.GetLoanDetails(r.Context(), loanID, identity)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, details)
}

// GetPaymentHistory handles GET /api/v1/loans/{loanId}/payments
func (h *LoanHandler) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	loanID, identity, ok := h.request(w, r)
	if !ok {
		return
	}

	history, err := h.service.GetPaymentHistory(r.Context(), loanID, identity)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.Success(w, history)
}
