package repository

import (
	"context"
	"time"

	"discount-manager/internal/model"

	"github.com/google/uuid"
)

// DiscountRepository defines the interface for discount record data access.
type DiscountRepository interface {
	// Create inserts a new discount row.
	Create(ctx context.Context, d *model.DiscountCode) error

	// GetByShopAndCode retrieves a discount by its shop and code.
	GetByShopAndCode(ctx context.Context, shop, code string) (*model.DiscountCode, error)

	// GetByID retrieves a discount by its local row id.
	GetByID(ctx context.Context, shop string, id uuid.UUID) (*model.DiscountCode, error)

	// GetByDiscountID retrieves a discount by its remote global id.
	GetByDiscountID(ctx context.Context, shop, discountID string) (*model.DiscountCode, error)

	// List retrieves a filtered page of discounts plus the total matching count.
	List(ctx context.Context, q model.ListDiscountsQuery) ([]model.DiscountCode, int, error)

	// ListByShop retrieves every discount row for a shop.
	ListByShop(ctx context.Context, shop string) ([]model.DiscountCode, error)

	// CountByStatus computes the aggregate dashboard counters.
	CountByStatus(ctx context.Context, shop string, now time.Time) (model.ListStats, error)

	// CreatedHistogram computes per-day created counts by status for the
	// trailing window of days ending at now.
	CreatedHistogram(ctx context.Context, shop string, days int, now time.Time) ([]model.DayBucket, error)

	// Update overwrites the mutable fields of an existing row.
	Update(ctx context.Context, d *model.DiscountCode) error

	// UpsertByDiscountID inserts or overwrites a row keyed by the remote id.
	// Webhook-driven writes use this so redelivery stays idempotent.
	UpsertByDiscountID(ctx context.Context, d *model.DiscountCode) error

	// IncrementUsedCount adds one to the usage counter of the row matching
	// the code. Returns false when no row matched.
	IncrementUsedCount(ctx context.Context, shop, code string) (bool, error)

	// Delete removes a row by local id.
	Delete(ctx context.Context, shop string, id uuid.UUID) error

	// DeleteByDiscountID removes a row by remote global id.
	DeleteByDiscountID(ctx context.Context, shop, discountID string) error
}

// SessionRepository reads the per-shop access tokens installed by the
// platform SDK. The core never writes this table.
type SessionRepository interface {
	// GetByShop retrieves the session for a shop, or (nil, nil) when the
	// shop has no session.
	GetByShop(ctx context.Context, shop string) (*model.Session, error)
}

// WebhookEventRepository tracks processed webhook deliveries for
// idempotency.
type WebhookEventRepository interface {
	// MarkOrderProcessed records an order webhook delivery. Returns false
	// when the order was already processed for the shop.
	MarkOrderProcessed(ctx context.Context, shop string, orderID int64) (bool, error)
}
