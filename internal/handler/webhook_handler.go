package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"discount-manager/internal/model"
	"discount-manager/internal/service"

	"github.com/rs/zerolog"
)

// WebhookHandler receives platform webhook deliveries. Responses are always
// 200 so the platform never retries on reconciliation errors; failures are
// logged instead.
type WebhookHandler struct {
	service service.WebhookService
	logger  zerolog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(service service.WebhookService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		logger:  logger.With().Str("handler", "webhook").Logger(),
	}
}

// ack acknowledges a delivery regardless of the reconciliation outcome.
func (h *WebhookHandler) ack(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// decode reads and parses the raw delivery body. The shop domain comes from
// the X-Shopify-Shop-Domain header.
func (h *WebhookHandler) decode(r *http.Request, dst interface{}) (string, bool) {
	shop := r.Header.Get("X-Shopify-Shop-Domain")
	body, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		h.logger.Warn().Err(err).Str("shop", shop).Msg("failed to read webhook body")
		return shop, false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		h.logger.Warn().Err(err).Str("shop", shop).Str("topic", r.Header.Get("X-Shopify-Topic")).Msg("failed to decode webhook payload")
		return shop, false
	}
	if shop == "" {
		h.logger.Warn().Str("topic", r.Header.Get("X-Shopify-Topic")).Msg("webhook without shop domain header")
		return shop, false
	}
	return shop, true
}

// DiscountCreated handles POST /webhooks/discounts/create.
func (h *WebhookHandler) DiscountCreated(w http.ResponseWriter, r *http.Request) {
	var payload model.DiscountWebhookPayload
	shop, ok := h.decode(r, &payload)
	if ok {
		if err := h.service.DiscountCreated(r.Context(), shop, &payload); err != nil {
			h.logger.Error().Err(err).Str("shop", shop).Msg("discount create reconciliation failed")
		}
	}
	h.ack(w)
}

// DiscountUpdated handles POST /webhooks/discounts/update.
func (h *WebhookHandler) DiscountUpdated(w http.ResponseWriter, r *http.Request) {
	var payload model.DiscountWebhookPayload
	shop, ok := h.decode(r, &payload)
	if ok {
		if err := h.service.DiscountUpdated(r.Context(), shop, &payload); err != nil {
			h.logger.Error().Err(err).Str("shop", shop).Msg("discount update reconciliation failed")
		}
	}
	h.ack(w)
}

// DiscountDeleted handles POST /webhooks/discounts/delete.
func (h *WebhookHandler) DiscountDeleted(w http.ResponseWriter, r *http.Request) {
	var payload model.DiscountWebhookPayload
	shop, ok := h.decode(r, &payload)
	if ok {
		if err := h.service.DiscountDeleted(r.Context(), shop, &payload); err != nil {
			h.logger.Error().Err(err).Str("shop", shop).Msg("discount delete reconciliation failed")
		}
	}
	h.ack(w)
}

// OrderCreated handles POST /webhooks/orders/create.
func (h *WebhookHandler) OrderCreated(w http.ResponseWriter, r *http.Request) {
	var payload model.OrderWebhookPayload
	shop, ok := h.decode(r, &payload)
	if ok {
		if err := h.service.OrderCreated(r.Context(), shop, &payload); err != nil {
			h.logger.Error().Err(err).Str("shop", shop).Int64("order_id", payload.ID).Msg("order reconciliation failed")
		}
	}
	h.ack(w)
}

// CustomerCreated handles POST /webhooks/customers/create.
func (h *WebhookHandler) CustomerCreated(w http.ResponseWriter, r *http.Request) {
	var payload model.CustomerWebhookPayload
	shop, ok := h.decode(r, &payload)
	if ok {
		if err := h.service.CustomerCreated(r.Context(), shop, &payload); err != nil {
			h.logger.Error().Err(err).Str("shop", shop).Msg("customer reconciliation failed")
		}
	}
	h.ack(w)
}
