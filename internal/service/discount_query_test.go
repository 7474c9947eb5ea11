package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"discount-manager/internal/model"
	"discount-manager/internal/shopify"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDiscountService_List_AttachesLiveUsage(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	rows := []model.DiscountCode{
		{ID: uuid.New(), Shop: testShop, Code: "SALE10", DiscountID: "gid://shopify/DiscountCodeNode/1", Kind: model.KindCustomBasic, UsedCount: 2, IsActive: true},
		{ID: uuid.New(), Shop: testShop, DiscountID: "gid://shopify/DiscountAutomaticNode/2", Kind: model.KindAutomaticBasic, UsedCount: 7, IsActive: true},
	}

	discountRepo.On("List", ctx, mock.Anything).Return(rows, 2, nil)
	discountRepo.On("CountByStatus", ctx, testShop, mock.Anything).Return(model.ListStats{Total: 2, Active: 2}, nil)
	discountRepo.On("CreatedHistogram", ctx, testShop, 7, mock.Anything).Return([]model.DayBucket{}, nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("GetUsageCount", ctx, mock.Anything, rows[0].DiscountID).Return(5, nil)

	result, err := newTestService(discountRepo, sessionRepo, gateway, nil).List(ctx, model.ListDiscountsQuery{Shop: testShop})

	require.NoError(t, err)
	require.Len(t, result.Discounts, 2)
	assert.Equal(t, 5, result.Discounts[0].LiveUsage)
	assert.True(t, result.Discounts[0].UsageKnown)
	// Automatic rows keep the local counter and are never looked up.
	assert.Equal(t, 7, result.Discounts[1].LiveUsage)
	assert.False(t, result.Discounts[1].UsageKnown)
	gateway.AssertNumberOfCalls(t, "GetUsageCount", 1)
}

func TestDiscountService_List_UsageLookupFailureKeepsLocalCount(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	rows := []model.DiscountCode{
		{ID: uuid.New(), Shop: testShop, Code: "SALE10", DiscountID: "gid://shopify/DiscountCodeNode/1", Kind: model.KindCustomBasic, UsedCount: 3},
	}

	discountRepo.On("List", ctx, mock.Anything).Return(rows, 1, nil)
	discountRepo.On("CountByStatus", ctx, testShop, mock.Anything).Return(model.ListStats{Total: 1}, nil)
	discountRepo.On("CreatedHistogram", ctx, testShop, 7, mock.Anything).Return([]model.DayBucket{}, nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("GetUsageCount", ctx, mock.Anything, rows[0].DiscountID).Return(0, errors.New("throttled"))

	result, err := newTestService(discountRepo, sessionRepo, gateway, nil).List(ctx, model.ListDiscountsQuery{Shop: testShop})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Discounts[0].LiveUsage)
	assert.False(t, result.Discounts[0].UsageKnown)
}

func TestDiscountService_List_DefaultsPaging(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	discountRepo.On("List", ctx, mock.MatchedBy(func(q model.ListDiscountsQuery) bool {
		return q.Page == 1 && q.Limit == 20
	})).Return([]model.DiscountCode{}, 0, nil)
	discountRepo.On("CountByStatus", ctx, testShop, mock.Anything).Return(model.ListStats{}, nil)
	discountRepo.On("CreatedHistogram", ctx, testShop, 7, mock.Anything).Return([]model.DayBucket{}, nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)

	result, err := newTestService(discountRepo, sessionRepo, gateway, nil).List(ctx, model.ListDiscountsQuery{Shop: testShop, Page: -3, Limit: 500})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
	discountRepo.AssertExpectations(t)
}

func TestDiscountService_GetByID_MergesLocalFields(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	remoteID := "gid://shopify/DiscountCodeNode/42"
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("GetCodeDiscount", ctx, mock.Anything, remoteID).Return(&shopify.RemoteDiscount{
		ID:         remoteID,
		Title:      "Summer Sale",
		Code:       "SALE10",
		Status:     "ACTIVE",
		StartsAt:   time.Now().UTC(),
		Percentage: 0.1,
		UsageCount: 4,
	}, nil)
	discountRepo.On("GetByDiscountID", ctx, testShop, remoteID).Return(&model.DiscountCode{
		ID:            uuid.New(),
		Shop:          testShop,
		DiscountID:    remoteID,
		Kind:          model.KindCustomBasic,
		DiscountScope: model.ScopeOrder,
		IsMultiple:    true,
		AdvancedRule:  []byte(`{"minAmount":50}`),
	}, nil)

	detail, err := newTestService(discountRepo, sessionRepo, gateway, nil).GetByID(ctx, testShop, "42", model.MethodCustom)

	require.NoError(t, err)
	assert.Equal(t, "Summer Sale", detail.Title)
	assert.Equal(t, 10.0, detail.Percentage)
	assert.Equal(t, 4, detail.UsedCount)
	// UI-only fields come from the local store.
	assert.Equal(t, model.ScopeOrder, detail.DiscountScope)
	assert.True(t, detail.IsMultiple)
	assert.JSONEq(t, `{"minAmount":50}`, string(detail.AdvancedRule))
}

func TestDiscountService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("GetAutomaticDiscount", ctx, mock.Anything, "gid://shopify/DiscountAutomaticNode/42").Return(nil, nil)

	_, err := newTestService(new(MockDiscountRepository), sessionRepo, gateway, nil).GetByID(ctx, testShop, "42", model.MethodAutomatic)

	assert.ErrorIs(t, err, model.ErrDiscountNotFound)
}

func TestCatalogService_PassThroughs(t *testing.T) {
	ctx := context.Background()
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("ListProducts", ctx, mock.Anything, catalogPageSize, "shirt").Return([]shopify.Product{{ID: "gid://shopify/Product/1", Title: "Shirt"}}, nil)

	svc := NewCatalogService(sessionRepo, gateway, zerolog.Nop())
	products, err := svc.Products(ctx, testShop, "shirt")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Shirt", products[0].Title)
}

func TestCatalogService_NoSession(t *testing.T) {
	ctx := context.Background()
	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("GetByShop", ctx, testShop).Return(nil, nil)

	svc := NewCatalogService(sessionRepo, new(MockGateway), zerolog.Nop())
	_, err := svc.Products(ctx, testShop, "")

	assert.ErrorIs(t, err, model.ErrAccessTokenNotFound)
}
