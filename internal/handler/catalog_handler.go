package handler

import (
	"net/http"

	"discount-manager/internal/model"
	"discount-manager/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler serves the read-only catalog lookups behind the admin UI's
// target pickers.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// listResponse wraps catalog results in the uniform response shape.
type listResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func (h *CatalogHandler) serve(w http.ResponseWriter, r *http.Request, fetch func(shop, query string) (interface{}, error)) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		writeError(w, http.StatusBadRequest, model.ErrMissingShop.Message, h.logger)
		return
	}

	data, err := fetch(shop, r.URL.Query().Get("query"))
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Str("path", r.URL.Path).Msg("catalog lookup failed")
		writeError(w, http.StatusInternalServerError, model.GenericFailure, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Success: true, Data: data})
}

// Products handles GET /api/products.
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(shop, query string) (interface{}, error) {
		return h.service.Products(r.Context(), shop, query)
	})
}

// Collections handles GET /api/collections.
func (h *CatalogHandler) Collections(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(shop, query string) (interface{}, error) {
		return h.service.Collections(r.Context(), shop, query)
	})
}

// Customers handles GET /api/customers.
func (h *CatalogHandler) Customers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(shop, query string) (interface{}, error) {
		return h.service.Customers(r.Context(), shop, query)
	})
}

// Segments handles GET /api/segments.
func (h *CatalogHandler) Segments(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(shop, _ string) (interface{}, error) {
		return h.service.Segments(r.Context(), shop)
	})
}

// AppEmbedStatus handles GET /api/appEmbedStatus. Theme inspection is not
// wired up, so the embed state is reported as unknown.
func (h *CatalogHandler) AppEmbedStatus(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		writeError(w, http.StatusBadRequest, model.ErrMissingShop.Message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"enabled": false,
		"known":   false,
	})
}
