package handler

import (
	"net/http"
	"strconv"

	"discount-manager/internal/model"
	"discount-manager/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// DiscountHandler handles discount-related HTTP requests.
type DiscountHandler struct {
	service service.DiscountService
	logger  zerolog.Logger
}

// NewDiscountHandler creates a new discount handler.
func NewDiscountHandler(service service.DiscountService, logger zerolog.Logger) *DiscountHandler {
	return &DiscountHandler{
		service: service,
		logger:  logger.With().Str("handler", "discount").Logger(),
	}
}

// discountPayload is the combined wire shape of create and update bodies.
// The scope field selects between the basic and Buy-X-Get-Y variants; id and
// discountId are only present on updates.
type discountPayload struct {
	model.CreateDiscountRequest
	ID           string                    `json:"id"`
	DiscountID   string                    `json:"discountId"`
	UsesPerOrder int                       `json:"usesPerOrder"`
	CustomerBuys model.CustomerBuysRequest `json:"customerBuys"`
}

func (p *discountPayload) bxgy() model.CreateBxgyRequest {
	return model.CreateBxgyRequest{
		Shop:         p.Shop,
		Title:        p.Title,
		Codes:        p.Codes,
		Method:       p.Method,
		StartsAt:     p.StartsAt,
		EndsAt:       p.EndsAt,
		UsageLimit:   p.UsageLimit,
		UsesPerOrder: p.UsesPerOrder,
		CustomerBuys: p.CustomerBuys,
		CustomerGets: p.CustomerGets,
		AdvancedRule: p.AdvancedRule,
	}
}

// Create handles POST /api/discount.
func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload discountPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	var result *model.CommandResult
	if payload.Scope == model.ScopeBuyXGetY {
		req := payload.bxgy()
		result = h.service.CreateBxgy(r.Context(), &req)
	} else {
		result = h.service.CreateBasic(r.Context(), &payload.CreateDiscountRequest)
	}

	writeJSON(w, statusFor(result), result)
}

// Update handles PUT /api/discount.
func (h *DiscountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload discountPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	var result *model.CommandResult
	if payload.Scope == model.ScopeBuyXGetY {
		req := model.UpdateBxgyRequest{
			Shop:              payload.Shop,
			ID:                payload.ID,
			DiscountID:        payload.DiscountID,
			CreateBxgyRequest: payload.bxgy(),
		}
		result = h.service.UpdateBxgy(r.Context(), &req)
	} else {
		req := model.UpdateDiscountRequest{
			Shop:                  payload.Shop,
			ID:                    payload.ID,
			DiscountID:            payload.DiscountID,
			CreateDiscountRequest: payload.CreateDiscountRequest,
		}
		result = h.service.UpdateBasic(r.Context(), &req)
	}

	writeJSON(w, statusFor(result), result)
}

// Delete handles DELETE /api/discount.
func (h *DiscountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteDiscountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	result := h.service.Delete(r.Context(), &req)
	writeJSON(w, statusFor(result), result)
}

// DeleteAll handles DELETE /api/discount/all.
func (h *DiscountHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	result := h.service.DeleteAll(r.Context(), shop)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, result)
}

// DeleteRedeemCodes handles DELETE /api/discount/redeem-codes.
func (h *DiscountHandler) DeleteRedeemCodes(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteRedeemCodesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	result := h.service.DeleteRedeemCodes(r.Context(), &req)
	writeJSON(w, statusFor(result), result)
}

// ImportCodes handles POST /api/discount/import-codes.
func (h *DiscountHandler) ImportCodes(w http.ResponseWriter, r *http.Request) {
	var req model.ImportCodesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	result := h.service.ImportCodes(r.Context(), &req)
	writeJSON(w, statusFor(result), result)
}

// List handles GET /api/discount with paging and filter query parameters.
func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	q := model.ListDiscountsQuery{
		Shop:   r.URL.Query().Get("shop"),
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	if q.Shop == "" {
		writeError(w, http.StatusBadRequest, model.ErrMissingShop.Message, h.logger)
		return
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.service.List(r.Context(), q)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", q.Shop).Msg("list discounts failed")
		writeError(w, http.StatusInternalServerError, model.GenericFailure, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetByID handles GET /api/discount/{id}, where id is the numeric remote id.
func (h *DiscountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		writeError(w, http.StatusBadRequest, model.ErrMissingShop.Message, h.logger)
		return
	}

	id := chi.URLParam(r, "id")
	method := model.DiscountMethod(r.URL.Query().Get("method"))
	if method == "" {
		method = model.MethodCustom
	}

	detail, err := h.service.GetByID(r.Context(), shop, id, method)
	if err != nil {
		if err == model.ErrDiscountNotFound {
			writeError(w, http.StatusNotFound, err.Error(), h.logger)
			return
		}
		h.logger.Error().Err(err).Str("shop", shop).Str("id", id).Msg("get discount failed")
		writeError(w, http.StatusInternalServerError, model.GenericFailure, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// statusFor maps a command result onto an HTTP status. Failures are client
// errors; the message carries the detail.
func statusFor(result *model.CommandResult) int {
	if result.Success {
		return http.StatusOK
	}
	return http.StatusBadRequest
}
