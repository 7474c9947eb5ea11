package service

import (
	"context"

	"discount-manager/internal/model"
	"discount-manager/internal/repository"
	"discount-manager/internal/shopify"

	"github.com/rs/zerolog"
)

// Page size for catalog pickers.
const catalogPageSize = 50

// catalogService implements CatalogService as thin pass-throughs to the
// Admin API.
type catalogService struct {
	sessionRepo repository.SessionRepository
	gateway     shopify.Gateway
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(sessionRepo repository.SessionRepository, gateway shopify.Gateway, logger zerolog.Logger) CatalogService {
	return &catalogService{
		sessionRepo: sessionRepo,
		gateway:     gateway,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) session(ctx context.Context, shop string) (*model.Session, error) {
	sess, err := s.sessionRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, model.ErrAccessTokenNotFound
	}
	return sess, nil
}

func (s *catalogService) Products(ctx context.Context, shop, query string) ([]shopify.Product, error) {
	sess, err := s.session(ctx, shop)
	if err != nil {
		return nil, err
	}
	return s.gateway.ListProducts(ctx, sess, catalogPageSize, query)
}

func (s *catalogService) Collections(ctx context.Context, shop, query string) ([]shopify.Collection, error) {
	sess, err := s.session(ctx, shop)
	if err != nil {
		return nil, err
	}
	return s.gateway.ListCollections(ctx, sess, catalogPageSize, query)
}

func (s *catalogService) Customers(ctx context.Context, shop, query string) ([]shopify.Customer, error) {
	sess, err := s.session(ctx, shop)
	if err != nil {
		return nil, err
	}
	return s.gateway.ListCustomers(ctx, sess, catalogPageSize, query)
}

func (s *catalogService) Segments(ctx context.Context, shop string) ([]shopify.Segment, error) {
	sess, err := s.session(ctx, shop)
	if err != nil {
		return nil, err
	}
	return s.gateway.ListSegments(ctx, sess, catalogPageSize)
}
