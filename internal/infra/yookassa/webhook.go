package yookassa

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

const metadataPaymentID = "internal_payment_id"

// PaymentChecker re-reads a payment from the provider and credits it.
type PaymentChecker interface {
	CheckAndNotify(ctx context.Context, paymentID int64) error
}

type notification struct {
	Type   string `json:"type"`
	Event  string `json:"event"`
	Object struct {
		ID       string            `json:"id"`
		Status   string            `json:"status"`
		Metadata map[string]string `json:"metadata"`
	} `json:"object"`
}

// WebhookHandler accepts payment notifications. The body only says which
// payment changed; its status is fetched from the API again before any
// money moves.
type WebhookHandler struct {
	checker PaymentChecker
	logger  *slog.Logger
}

func NewWebhookHandler(checker PaymentChecker, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		checker: checker,
		logger:  logger.With("component", "yookassa_webhook"),
	}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var n notification
	if err := render.DecodeJSON(r.Body, &n); err != nil {
		h.logger.Warn("Malformed notification", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "malformed body"})
		return
	}

	id, err := strconv.ParseInt(n.Object.Metadata[metadataPaymentID], 10, 64)
	if err != nil {
		h.logger.Warn("Notification without internal payment id", "yookassa_id", n.Object.ID, "event", n.Event)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "unknown payment"})
		return
	}

	h.logger.Info("Payment notification", "payment_id", id, "yookassa_id", n.Object.ID, "event", n.Event)

	if err := h.checker.CheckAndNotify(r.Context(), id); err != nil {
		h.logger.Error("Failed to process notification", "payment_id", id, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "retry later"})
		return
	}

	render.JSON(w, r, map[string]string{"status": "ok"})
}
