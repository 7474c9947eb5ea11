package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"discount-manager/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS discount_codes (
			id UUID PRIMARY KEY,
			shop VARCHAR(255) NOT NULL,
			code VARCHAR(64) NOT NULL DEFAULT '',
			title VARCHAR(255) NOT NULL DEFAULT '',
			discount_id VARCHAR(64) NOT NULL,
			kind VARCHAR(32) NOT NULL,
			starts_at TIMESTAMPTZ NOT NULL,
			ends_at TIMESTAMPTZ,
			discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			discount_type VARCHAR(16) NOT NULL,
			discount_method VARCHAR(16) NOT NULL,
			discount_scope VARCHAR(16) NOT NULL,
			usage_limit INTEGER NOT NULL DEFAULT 0,
			used_count INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			is_multiple BOOLEAN NOT NULL DEFAULT FALSE,
			advanced_rule JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (shop, discount_id)
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_discount_codes_shop_code
			ON discount_codes (shop, LOWER(code)) WHERE code <> '';
		CREATE INDEX IF NOT EXISTS idx_discount_codes_shop_created
			ON discount_codes (shop, created_at DESC);

		CREATE TABLE IF NOT EXISTS sessions (
			shop VARCHAR(255) PRIMARY KEY,
			access_token VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS processed_order_events (
			shop VARCHAR(255) NOT NULL,
			order_id BIGINT NOT NULL,
			processed_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (shop, order_id)
		);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// CleanupDB truncates all tables between test cases.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	_, err := pool.Exec(ctx, `TRUNCATE TABLE discount_codes, sessions, processed_order_events`)
	if err != nil {
		t.Fatalf("failed to cleanup database: %v", err)
	}
}

// SeedSession inserts an installed-shop session for the given shop.
func SeedSession(t *testing.T, pool *pgxpool.Pool, shop, token string) {
	t.Helper()

	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO sessions (shop, access_token) VALUES ($1, $2)
		 ON CONFLICT (shop) DO UPDATE SET access_token = EXCLUDED.access_token`,
		shop, token,
	)
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
}

// NewTestDiscount builds a discount row with sensible defaults for tests.
func NewTestDiscount(shop, code, discountID string, kind model.DiscountKind) *model.DiscountCode {
	now := time.Now().UTC().Truncate(time.Millisecond)
	method := model.MethodCustom
	if !kind.IsCustom() {
		method = model.MethodAutomatic
	}
	scope := model.ScopeProduct
	if kind == model.KindCustomBxgy || kind == model.KindAutomaticBxgy {
		scope = model.ScopeBuyXGetY
	}
	return &model.DiscountCode{
		ID:             uuid.New(),
		Shop:           shop,
		Code:           code,
		Title:          "Test " + code,
		DiscountID:     discountID,
		Kind:           kind,
		StartsAt:       now,
		DiscountAmount: 10,
		DiscountType:   model.TypePercent,
		DiscountMethod: method,
		DiscountScope:  scope,
		IsActive:       true,
		AdvancedRule:   json.RawMessage(`{}`),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
