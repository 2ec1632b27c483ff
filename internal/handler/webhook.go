package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
	"github.com/Amaral-Gabriel/daily-loan-pay/pkg/response"
)

// maxNotificationBytes bounds the webhook body
const maxNotificationBytes = 64 << 10

type WebhookHandler struct {
	reconciler Reconciler
	validator  *validator.Validate
	logger     *slog.Logger
}

func NewWebhookHandler(reconciler Reconciler, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		reconciler: reconciler,
		validator:  validator.New(),
		logger:     logger,
	}
}

// ConfirmPayment handles POST /api/v1/webhooks/payment-confirmation.
// It always answers 200; the success flag tells the network whether to retry.
func (h *WebhookHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var notification domain.ConfirmationNotification

	body := io.LimitReader(r.Body, maxNotificationBytes)
	if err := json.NewDecoder(body).Decode(&notification); err != nil {
		h.logger.WarnContext(r.Context(), "undecodable confirmation notification", "error", err)
		h.acknowledge(w, domain.ResultOf(domain.OutcomeMalformed))
		return
	}

	if err := h.validator.Struct(notification); err != nil {
		h.logger.WarnContext(r.Context(), "invalid confirmation notification",
			"transaction_id", notification.TransactionID,
			"error", err,
		)
		h.acknowledge(w, domain.ResultOf(domain.OutcomeMalformed))
		return
	}

	h.acknowledge(w, h.reconciler.ReconcileConfirmation(r.Context(), notification))
}

func (h *WebhookHandler) acknowledge(w http.ResponseWriter, result domain.ReconcileResult) {
	response.Acknowledge(w, result.Accepted, map[string]domain.ReconcileOutcome{"outcome": result.Outcome})
}
