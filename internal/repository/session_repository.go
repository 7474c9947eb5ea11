package repository

import (
	"context"
	"fmt"

	"discount-manager/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// sessionRepository implements SessionRepository using PostgreSQL. The
// sessions table is written by the platform SDK during app installation;
// this repository only reads it.
type sessionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSessionRepository creates a new PostgreSQL-backed session repository.
func NewSessionRepository(pool *pgxpool.Pool, logger zerolog.Logger) SessionRepository {
	return &sessionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "session").Logger(),
	}
}

// GetByShop retrieves the session for a shop.
func (r *sessionRepository) GetByShop(ctx context.Context, shop string) (*model.Session, error) {
	query := `
		SELECT shop, access_token, created_at
		FROM sessions
		WHERE shop = $1
	`

	var s model.Session
	err := r.pool.QueryRow(ctx, query, shop).Scan(&s.Shop, &s.AccessToken, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("shop", shop).Msg("session not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("shop", shop).Msg("failed to query session")
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return &s, nil
}
