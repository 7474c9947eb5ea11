package router

import (
	"net/http"

	"discount-manager/internal/handler"
	"discount-manager/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	discountHandler *handler.DiscountHandler,
	catalogHandler *handler.CatalogHandler,
	webhookHandler *handler.WebhookHandler,
	apiKey string,
	webhookSecret string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/discount", func(r chi.Router) {
			r.Get("/", discountHandler.List)
			r.Post("/", discountHandler.Create)
			r.Put("/", discountHandler.Update)
			r.Delete("/", discountHandler.Delete)
			r.Delete("/all", discountHandler.DeleteAll)
			r.Delete("/redeem-codes", discountHandler.DeleteRedeemCodes)
			r.Post("/import-codes", discountHandler.ImportCodes)
			r.Get("/{id}", discountHandler.GetByID)
		})

		r.Get("/products", catalogHandler.Products)
		r.Get("/collections", catalogHandler.Collections)
		r.Get("/customers", catalogHandler.Customers)
		r.Get("/segments", catalogHandler.Segments)
		r.Get("/appEmbedStatus", catalogHandler.AppEmbedStatus)
	})

	r.Route("/webhooks", func(r chi.Router) {
		r.Use(middleware.WebhookVerify(webhookSecret, logger))

		r.Post("/discounts/create", webhookHandler.DiscountCreated)
		r.Post("/discounts/update", webhookHandler.DiscountUpdated)
		r.Post("/discounts/delete", webhookHandler.DiscountDeleted)
		r.Post("/orders/create", webhookHandler.OrderCreated)
		r.Post("/customers/create", webhookHandler.CustomerCreated)
	})

	return r
}
