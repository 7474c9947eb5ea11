package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"discount-manager/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const discountColumns = `id, shop, code, title, discount_id, kind, starts_at, ends_at,
	discount_amount, discount_type, discount_method, discount_scope,
	usage_limit, used_count, is_active, is_multiple, advanced_rule,
	created_at, updated_at`

// discountRepository implements DiscountRepository using PostgreSQL.
type discountRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDiscountRepository creates a new PostgreSQL-backed discount repository.
func NewDiscountRepository(pool *pgxpool.Pool, logger zerolog.Logger) DiscountRepository {
	return &discountRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "discount").Logger(),
	}
}

func scanDiscount(row pgx.Row) (*model.DiscountCode, error) {
	var d model.DiscountCode
	err := row.Scan(
		&d.ID, &d.Shop, &d.Code, &d.Title, &d.DiscountID, &d.Kind,
		&d.StartsAt, &d.EndsAt, &d.DiscountAmount, &d.DiscountType,
		&d.DiscountMethod, &d.DiscountScope, &d.UsageLimit, &d.UsedCount,
		&d.IsActive, &d.IsMultiple, &d.AdvancedRule, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new discount row.
func (r *discountRepository) Create(ctx context.Context, d *model.DiscountCode) error {
	query := `
		INSERT INTO discount_codes (` + discountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.Shop, d.Code, d.Title, d.DiscountID, d.Kind,
		d.StartsAt, d.EndsAt, d.DiscountAmount, d.DiscountType,
		d.DiscountMethod, d.DiscountScope, d.UsageLimit, d.UsedCount,
		d.IsActive, d.IsMultiple, d.AdvancedRule, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("shop", d.Shop).
			Str("code", d.Code).
			Msg("failed to insert discount")
		return fmt.Errorf("failed to insert discount: %w", err)
	}

	return nil
}

// GetByShopAndCode retrieves a discount by its shop and code.
func (r *discountRepository) GetByShopAndCode(ctx context.Context, shop, code string) (*model.DiscountCode, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discount_codes
		WHERE shop = $1 AND LOWER(code) = LOWER($2)
	`

	d, err := scanDiscount(r.pool.QueryRow(ctx, query, shop, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("shop", shop).Str("code", code).Msg("failed to query discount by code")
		return nil, fmt.Errorf("failed to query discount by code: %w", err)
	}

	return d, nil
}

// GetByID retrieves a discount by its local row id.
func (r *discountRepository) GetByID(ctx context.Context, shop string, id uuid.UUID) (*model.DiscountCode, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discount_codes
		WHERE shop = $1 AND id = $2
	`

	d, err := scanDiscount(r.pool.QueryRow(ctx, query, shop, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("shop", shop).Str("id", id.String()).Msg("failed to query discount by id")
		return nil, fmt.Errorf("failed to query discount by id: %w", err)
	}

	return d, nil
}

// GetByDiscountID retrieves a discount by its remote global id.
func (r *discountRepository) GetByDiscountID(ctx context.Context, shop, discountID string) (*model.DiscountCode, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discount_codes
		WHERE shop = $1 AND discount_id = $2
	`

	d, err := scanDiscount(r.pool.QueryRow(ctx, query, shop, discountID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("shop", shop).Str("discount_id", discountID).Msg("failed to query discount by remote id")
		return nil, fmt.Errorf("failed to query discount by remote id: %w", err)
	}

	return d, nil
}

// listFilter renders the WHERE clause and args for a listing query.
func listFilter(q model.ListDiscountsQuery, now time.Time) (string, []interface{}) {
	clauses := []string{"shop = $1"}
	args := []interface{}{q.Shop}

	switch q.Status {
	case "active":
		args = append(args, now)
		clauses = append(clauses, fmt.Sprintf("is_active = TRUE AND (ends_at IS NULL OR ends_at > $%d)", len(args)))
	case "expired":
		args = append(args, now)
		clauses = append(clauses, fmt.Sprintf("ends_at IS NOT NULL AND ends_at < $%d", len(args)))
	}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		clauses = append(clauses, fmt.Sprintf("code ILIKE $%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

// List retrieves a filtered page of discounts plus the total matching count.
func (r *discountRepository) List(ctx context.Context, q model.ListDiscountsQuery) ([]model.DiscountCode, int, error) {
	where, args := listFilter(q, time.Now().UTC())

	var total int
	countQuery := "SELECT COUNT(*) FROM discount_codes WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Str("shop", q.Shop).Msg("failed to count discounts")
		return nil, 0, fmt.Errorf("failed to count discounts: %w", err)
	}

	limit := q.Limit
	if limit < 1 {
		limit = 20
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`
		SELECT `+discountColumns+`
		FROM discount_codes
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("shop", q.Shop).Msg("failed to query discounts")
		return nil, 0, fmt.Errorf("failed to query discounts: %w", err)
	}
	defer rows.Close()

	discounts, err := collectDiscounts(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("shop", q.Shop).Msg("failed to scan discount rows")
		return nil, 0, err
	}

	return discounts, total, nil
}

// ListByShop retrieves every discount row for a shop.
func (r *discountRepository) ListByShop(ctx context.Context, shop string) ([]model.DiscountCode, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discount_codes
		WHERE shop = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, shop)
	if err != nil {
		r.logger.Error().Err(err).Str("shop", shop).Msg("failed to query discounts for shop")
		return nil, fmt.Errorf("failed to query discounts for shop: %w", err)
	}
	defer rows.Close()

	return collectDiscounts(rows)
}

func collectDiscounts(rows pgx.Rows) ([]model.DiscountCode, error) {
	var discounts []model.DiscountCode
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan discount: %w", err)
		}
		discounts = append(discounts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating discounts: %w", err)
	}
	return discounts, nil
}

// CountByStatus computes the aggregate dashboard counters in one pass.
func (r *discountRepository) CountByStatus(ctx context.Context, shop string, now time.Time) (model.ListStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active = TRUE AND (ends_at IS NULL OR ends_at > $2)),
			COUNT(*) FILTER (WHERE ends_at IS NOT NULL AND ends_at < $2),
			COUNT(*) FILTER (WHERE used_count > 0)
		FROM discount_codes
		WHERE shop = $1
	`

	var stats model.ListStats
	err := r.pool.QueryRow(ctx, query, shop, now).Scan(&stats.Total, &stats.Active, &stats.Expired, &stats.Used)
	if err != nil {
		r.logger.Error().Err(err).Str("shop", shop).Msg("failed to count discounts by status")
		return model.ListStats{}, fmt.Errorf("failed to count discounts by status: %w", err)
	}

	return stats, nil
}

// CreatedHistogram computes per-day created counts by status for the trailing
// window. One grouped query instead of a query per day.
func (r *discountRepository) CreatedHistogram(ctx context.Context, shop string, days int, now time.Time) ([]model.DayBucket, error) {
	if days < 1 {
		days = 7
	}
	start := now.Truncate(24 * time.Hour).AddDate(0, 0, -(days - 1))

	query := `
		SELECT
			date_trunc('day', created_at) AS day,
			COUNT(*) FILTER (WHERE is_active = TRUE AND (ends_at IS NULL OR ends_at > $3)),
			COUNT(*) FILTER (WHERE used_count > 0),
			COUNT(*) FILTER (WHERE ends_at IS NOT NULL AND ends_at < $3)
		FROM discount_codes
		WHERE shop = $1 AND created_at >= $2
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.pool.Query(ctx, query, shop, start, now)
	if err != nil {
		r.logger.Error().Err(err).Str("shop", shop).Msg("failed to query creation histogram")
		return nil, fmt.Errorf("failed to query creation histogram: %w", err)
	}
	defer rows.Close()

	byDay := make(map[time.Time]model.DayBucket, days)
	for rows.Next() {
		var b model.DayBucket
		if err := rows.Scan(&b.Day, &b.Active, &b.Used, &b.Expired); err != nil {
			return nil, fmt.Errorf("failed to scan histogram row: %w", err)
		}
		byDay[b.Day.Truncate(24*time.Hour)] = b
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating histogram rows: %w", err)
	}

	// Return a dense window: days with no rows become zero buckets.
	buckets := make([]model.DayBucket, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		b, ok := byDay[day]
		if !ok {
			b = model.DayBucket{Day: day}
		}
		buckets = append(buckets, b)
	}

	return buckets, nil
}

// Update overwrites the mutable fields of an existing row.
func (r *discountRepository) Update(ctx context.Context, d *model.DiscountCode) error {
	query := `
		UPDATE discount_codes
		SET code = $3, title = $4, starts_at = $5, ends_at = $6,
			discount_amount = $7, discount_type = $8, discount_scope = $9,
			usage_limit = $10, is_active = $11, is_multiple = $12,
			advanced_rule = $13, updated_at = $14
		WHERE shop = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		d.Shop, d.ID, d.Code, d.Title, d.StartsAt, d.EndsAt,
		d.DiscountAmount, d.DiscountType, d.DiscountScope,
		d.UsageLimit, d.IsActive, d.IsMultiple, d.AdvancedRule, time.Now().UTC(),
	)
	if err != nil {
		r.logger.Error().Err(err).Str("shop", d.Shop).Str("id", d.ID.String()).Msg("failed to update discount")
		return fmt.Errorf("failed to update discount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("discount %s not found for shop %s", d.ID, d.Shop)
	}

	return nil
}

// UpsertByDiscountID inserts or overwrites a row keyed by the remote id.
func (r *discountRepository) UpsertByDiscountID(ctx context.Context, d *model.DiscountCode) error {
	query := `
		INSERT INTO discount_codes (` + discountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (shop, discount_id) DO UPDATE
		SET code = EXCLUDED.code,
			title = EXCLUDED.title,
			starts_at = EXCLUDED.starts_at,
			ends_at = EXCLUDED.ends_at,
			discount_amount = EXCLUDED.discount_amount,
			discount_type = EXCLUDED.discount_type,
			discount_scope = EXCLUDED.discount_scope,
			usage_limit = EXCLUDED.usage_limit,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.Shop, d.Code, d.Title, d.DiscountID, d.Kind,
		d.StartsAt, d.EndsAt, d.DiscountAmount, d.DiscountType,
		d.DiscountMethod, d.DiscountScope, d.UsageLimit, d.UsedCount,
		d.IsActive, d.IsMultiple, d.AdvancedRule, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("shop", d.Shop).Str("discount_id", d.DiscountID).Msg("failed to upsert discount")
		return fmt.Errorf("failed to upsert discount: %w", err)
	}

	return nil
}

// IncrementUsedCount adds one to the usage counter of the matching row.
func (r *discountRepository) IncrementUsedCount(ctx context.Context, shop, code string) (bool, error) {
	query := `
		UPDATE discount_codes
		SET used_count = used_count + 1, updated_at = $3
		WHERE shop = $1 AND LOWER(code) = LOWER($2)
	`

	tag, err := r.pool.Exec(ctx, query, shop, code, time.Now().UTC())
	if err != nil {
		r.logger.Error().Err(err).Str("shop", shop).Str("code", code).Msg("failed to increment used count")
		return false, fmt.Errorf("failed to increment used count: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a row by local id.
func (r *discountRepository) Delete(ctx context.Context, shop string, id uuid.UUID) error {
	query := `DELETE FROM discount_codes WHERE shop = $1 AND id = $2`

	_, err := r.pool.Exec(ctx, query, shop, id)
	if err != nil {
		r.logger.Error().Err(err).Str("shop", shop).Str("id", id.String()).Msg("failed to delete discount")
		return fmt.Errorf("failed to delete discount: %w", err)
	}

	return nil
}

// DeleteByDiscountID removes a row by remote global id.
func (r *discountRepository) DeleteByDiscountID(ctx context.Context, shop, discountID string) error {
	query := `DELETE FROM discount_codes WHERE shop = $1 AND discount_id = $2`

	_, err := r.pool.Exec(ctx, query, shop, discountID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop", shop).Str("discount_id", discountID).Msg("failed to delete discount by remote id")
		return fmt.Errorf("failed to delete discount by remote id: %w", err)
	}

	return nil
}
