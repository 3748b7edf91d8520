package handler

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82/webhook"
)

const maxWebhookBodyBytes = 65536

// WebhookHandler verifies Stripe webhook signatures. It is a stateless
// check: no billing side effects happen here.
type WebhookHandler struct {
	webhookSecret string
	logger        zerolog.Logger
}

func NewWebhookHandler(webhookSecret string, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhookSecret: webhookSecret,
		logger:        logger.With().Str("handler", "WebhookHandler").Logger(),
	}
}

func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/stripe/webhook", h.handleStripeWebhook)
}

func (h *WebhookHandler) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Webhook Error: unable to read request body")
		return
	}

	if h.webhookSecret != "" {
		event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret)
		if err != nil {
			h.logger.Error().Err(err).Msg("Stripe webhook signature verification failed")
			respondMessage(w, http.StatusBadRequest, "Webhook Error: "+err.Error())
			return
		}
		h.logger.Info().Str("event_type", string(event.Type)).Msg("Stripe webhook verified")
	}

	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}
