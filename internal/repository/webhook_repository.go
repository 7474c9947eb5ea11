package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// webhookEventRepository implements WebhookEventRepository using PostgreSQL.
// The platform delivers webhooks at least once; the unique (shop, order_id)
// key turns redelivered order events into no-ops.
type webhookEventRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWebhookEventRepository creates a new PostgreSQL-backed webhook event
// repository.
func NewWebhookEventRepository(pool *pgxpool.Pool, logger zerolog.Logger) WebhookEventRepository {
	return &webhookEventRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "webhook-event").Logger(),
	}
}

// MarkOrderProcessed records an order webhook delivery. Returns false when
// the order was already recorded for the shop.
func (r *webhookEventRepository) MarkOrderProcessed(ctx context.Context, shop string, orderID int64) (bool, error) {
	query := `
		INSERT INTO processed_order_events (shop, order_id, processed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (shop, order_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, shop, orderID, time.Now().UTC())
	if err != nil {
		r.logger.Error().Err(err).Str("shop", shop).Int64("order_id", orderID).Msg("failed to record order event")
		return false, fmt.Errorf("failed to record order event: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
