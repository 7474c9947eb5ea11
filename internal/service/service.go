package service

import (
	"context"

	"discount-manager/internal/model"
	"discount-manager/internal/shopify"
)

// DiscountService is the command and query surface for discount management.
// Command methods return a uniform result and never propagate errors; query
// methods return data or an error the handler converts to a failure
// response.
type DiscountService interface {
	// CreateBasic creates a basic (product/order/shipping) discount.
	CreateBasic(ctx context.Context, req *model.CreateDiscountRequest) *model.CommandResult

	// CreateBxgy creates a Buy-X-Get-Y discount.
	CreateBxgy(ctx context.Context, req *model.CreateBxgyRequest) *model.CommandResult

	// UpdateBasic updates an existing basic discount.
	UpdateBasic(ctx context.Context, req *model.UpdateDiscountRequest) *model.CommandResult

	// UpdateBxgy updates an existing Buy-X-Get-Y discount.
	UpdateBxgy(ctx context.Context, req *model.UpdateBxgyRequest) *model.CommandResult

	// Delete removes a single discount after verifying all identifiers
	// match the local row.
	Delete(ctx context.Context, req *model.DeleteDiscountRequest) *model.CommandResult

	// DeleteRedeemCodes removes generated codes under one parent discount.
	DeleteRedeemCodes(ctx context.Context, req *model.DeleteRedeemCodesRequest) *model.CommandResult

	// DeleteAll removes every discount for a shop, locally deleting only
	// rows whose remote deletion was confirmed.
	DeleteAll(ctx context.Context, shop string) *model.DeleteAllResult

	// ImportCodes bulk-imports redeem codes from a gzipped code file,
	// adding only codes not already present remotely.
	ImportCodes(ctx context.Context, req *model.ImportCodesRequest) *model.CommandResult

	// List returns a filtered, paged listing with live usage counts,
	// aggregate stats and the trailing creation histogram.
	List(ctx context.Context, q model.ListDiscountsQuery) (*model.ListDiscountsResult, error)

	// GetByID merges remote discount detail with locally stored UI fields.
	GetByID(ctx context.Context, shop, numericID string, method model.DiscountMethod) (*model.DiscountDetail, error)
}

// WebhookService reconciles local state with inbound platform events.
// Deliveries are assumed at-least-once; every method is idempotent.
type WebhookService interface {
	DiscountCreated(ctx context.Context, shop string, payload *model.DiscountWebhookPayload) error
	DiscountUpdated(ctx context.Context, shop string, payload *model.DiscountWebhookPayload) error
	DiscountDeleted(ctx context.Context, shop string, payload *model.DiscountWebhookPayload) error
	OrderCreated(ctx context.Context, shop string, payload *model.OrderWebhookPayload) error
	CustomerCreated(ctx context.Context, shop string, payload *model.CustomerWebhookPayload) error
}

// CatalogService exposes read-only catalog lookups for the admin UI's
// target pickers.
type CatalogService interface {
	Products(ctx context.Context, shop, query string) ([]shopify.Product, error)
	Collections(ctx context.Context, shop, query string) ([]shopify.Collection, error)
	Customers(ctx context.Context, shop, query string) ([]shopify.Customer, error)
	Segments(ctx context.Context, shop string) ([]shopify.Segment, error)
}
