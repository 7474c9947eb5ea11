package service

import (
	"context"
	"time"

	"discount-manager/internal/codes"
	"discount-manager/internal/model"
	"discount-manager/internal/shopify"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDiscountRepository is a mock implementation of DiscountRepository.
type MockDiscountRepository struct {
	mock.Mock
}

func (m *MockDiscountRepository) Create(ctx context.Context, d *model.DiscountCode) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDiscountRepository) GetByShopAndCode(ctx context.Context, shop, code string) (*model.DiscountCode, error) {
	args := m.Called(ctx, shop, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiscountCode), args.Error(1)
}

func (m *MockDiscountRepository) GetByID(ctx context.Context, shop string, id uuid.UUID) (*model.DiscountCode, error) {
	args := m.Called(ctx, shop, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiscountCode), args.Error(1)
}

func (m *MockDiscountRepository) GetByDiscountID(ctx context.Context, shop, discountID string) (*model.DiscountCode, error) {
	args := m.Called(ctx, shop, discountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiscountCode), args.Error(1)
}

func (m *MockDiscountRepository) List(ctx context.Context, q model.ListDiscountsQuery) ([]model.DiscountCode, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.DiscountCode), args.Int(1), args.Error(2)
}

func (m *MockDiscountRepository) ListByShop(ctx context.Context, shop string) ([]model.DiscountCode, error) {
	args := m.Called(ctx, shop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DiscountCode), args.Error(1)
}

func (m *MockDiscountRepository) CountByStatus(ctx context.Context, shop string, now time.Time) (model.ListStats, error) {
	args := m.Called(ctx, shop, now)
	return args.Get(0).(model.ListStats), args.Error(1)
}

func (m *MockDiscountRepository) CreatedHistogram(ctx context.Context, shop string, days int, now time.Time) ([]model.DayBucket, error) {
	args := m.Called(ctx, shop, days, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DayBucket), args.Error(1)
}

func (m *MockDiscountRepository) Update(ctx context.Context, d *model.DiscountCode) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDiscountRepository) UpsertByDiscountID(ctx context.Context, d *model.DiscountCode) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDiscountRepository) IncrementUsedCount(ctx context.Context, shop, code string) (bool, error) {
	args := m.Called(ctx, shop, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockDiscountRepository) Delete(ctx context.Context, shop string, id uuid.UUID) error {
	args := m.Called(ctx, shop, id)
	return args.Error(0)
}

func (m *MockDiscountRepository) DeleteByDiscountID(ctx context.Context, shop, discountID string) error {
	args := m.Called(ctx, shop, discountID)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) GetByShop(ctx context.Context, shop string) (*model.Session, error) {
	args := m.Called(ctx, shop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

// MockWebhookEventRepository is a mock implementation of
// WebhookEventRepository.
type MockWebhookEventRepository struct {
	mock.Mock
}

func (m *MockWebhookEventRepository) MarkOrderProcessed(ctx context.Context, shop string, orderID int64) (bool, error) {
	args := m.Called(ctx, shop, orderID)
	return args.Bool(0), args.Error(1)
}

// MockGateway is a mock implementation of shopify.Gateway.
type MockGateway struct {
	mock.Mock
}

func remoteArg(args mock.Arguments, i int) *shopify.RemoteDiscount {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*shopify.RemoteDiscount)
}

func (m *MockGateway) CreateBasicCode(ctx context.Context, sess *model.Session, input shopify.DiscountCodeBasicInput) (*shopify.RemoteDiscount, error) {
	args := m.Called(ctx, sess, input)
	return remoteArg(args, 0), args.Error(1)
}

func (m *MockGateway) CreateBasicAutomatic(ctx context.Context, sess *model.Session, input shopify.DiscountAutomaticBasicInput) (*shopify.RemoteDiscount, error) {
	args := m.Called(ctx, sess, input)
	return remoteArg(args, 0), args.Error(1)
}

func (m *MockGateway) UpdateBasicCode(ctx context.Context, sess *model.Session, id string, input shopify.DiscountCodeBasicInput) (*shopify.RemoteDiscount, error) {
	args := m.Called(ctx, sess, id, input)
	return remoteArg(args, 0), args.Error(1)
}

func (m *MockGateway) UpdateBasicAutomatic(ctx context.Context, sess *model.Session, id string, input shopify.DiscountAutomaticBasicInput) (*shopify.RemoteDiscount, error) {
	args := m.Called(ctx, sess, id, input)
	return remoteArg(args, 0), args.Error(1)
}

func (m *MockGateway) CreateBxgyCode(ctx context.Context, sess *model.Session, input shopify.DiscountCodeBxgyInput) (*shopify.RemoteDiscount, error) {
	args := m.Called(ctx, sess, input)
	return remoteArg(args, 0), args.Error(1)
}

func (m *MockGateway) CreateBxgyAutomatic(ctx context.Context, sess *model.Session, input shopify.DiscountAutomaticBxgyInput) (*shopify.RemoteDiscount, error) {
	args := m.Called(ctx, sess, input)
	return remoteArg(args, 0), args.Error(1)
}

func (m *MockGateway) UpdateBxgyCode(ctx context.Context, sess *model.Session, id string, input shopify.DiscountCodeBxgyInput) (*shopify.RemoteDiscount, error) {
	args := m.Called(ctx, sess, id, input)
	return remoteArg(args, 0), args.Error(1)
}

func (m *MockGateway) UpdateBxgyAutomatic(ctx context.Context, sess *model.Session, id string, input shopify.DiscountAutomaticBxgyInput) (*shopify.RemoteDiscount, error) {
	args := m.Called(ctx, sess, id, input)
	return remoteArg(args, 0), args.Error(1)
}

func (m *MockGateway) DeleteCode(ctx context.Context, sess *model.Session, id string) (string, error) {
	args := m.Called(ctx, sess, id)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) DeleteAutomatic(ctx context.Context, sess *model.Session, id string) (string, error) {
	args := m.Called(ctx, sess, id)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) AddRedeemCodes(ctx context.Context, sess *model.Session, discountID string, redeemCodes []string) error {
	args := m.Called(ctx, sess, discountID, redeemCodes)
	return args.Error(0)
}

func (m *MockGateway) DeleteRedeemCodes(ctx context.Context, sess *model.Session, discountID string, redeemCodes []string) error {
	args := m.Called(ctx, sess, discountID, redeemCodes)
	return args.Error(0)
}

func (m *MockGateway) ListRedeemCodes(ctx context.Context, sess *model.Session, discountID string) ([]string, error) {
	args := m.Called(ctx, sess, discountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGateway) GetCodeDiscount(ctx context.Context, sess *model.Session, id string) (*shopify.RemoteDiscount, error) {
	args := m.Called(ctx, sess, id)
	return remoteArg(args, 0), args.Error(1)
}

func (m *MockGateway) GetAutomaticDiscount(ctx context.Context, sess *model.Session, id string) (*shopify.RemoteDiscount, error) {
	args := m.Called(ctx, sess, id)
	return remoteArg(args, 0), args.Error(1)
}

func (m *MockGateway) GetUsageCount(ctx context.Context, sess *model.Session, id string) (int, error) {
	args := m.Called(ctx, sess, id)
	return args.Int(0), args.Error(1)
}

func (m *MockGateway) ListProducts(ctx context.Context, sess *model.Session, first int, query string) ([]shopify.Product, error) {
	args := m.Called(ctx, sess, first, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopify.Product), args.Error(1)
}

func (m *MockGateway) ListCollections(ctx context.Context, sess *model.Session, first int, query string) ([]shopify.Collection, error) {
	args := m.Called(ctx, sess, first, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopify.Collection), args.Error(1)
}

func (m *MockGateway) ListCustomers(ctx context.Context, sess *model.Session, first int, query string) ([]shopify.Customer, error) {
	args := m.Called(ctx, sess, first, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopify.Customer), args.Error(1)
}

func (m *MockGateway) ListSegments(ctx context.Context, sess *model.Session, first int) ([]shopify.Segment, error) {
	args := m.Called(ctx, sess, first)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopify.Segment), args.Error(1)
}

// MockCodeLoader is a mock implementation of codes.Loader.
type MockCodeLoader struct {
	mock.Mock
}

func (m *MockCodeLoader) Load(ctx context.Context, path string) (codes.CodeSet, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(codes.CodeSet), args.Error(1)
}
