package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"discount-manager/internal/codes"
	"discount-manager/internal/model"
	"discount-manager/internal/shopify"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testShop = "test-shop.myshopify.com"

func newTestService(discountRepo *MockDiscountRepository, sessionRepo *MockSessionRepository, gateway *MockGateway, loader *MockCodeLoader) DiscountService {
	if loader == nil {
		loader = new(MockCodeLoader)
	}
	return NewDiscountService(discountRepo, sessionRepo, gateway, loader, zerolog.Nop())
}

func testSession() *model.Session {
	return &model.Session{Shop: testShop, AccessToken: "shpat_test"}
}

func TestDiscountService_CreateBasic_Success(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	req := &model.CreateDiscountRequest{
		Shop:     testShop,
		Title:    "Summer Sale",
		Codes:    []string{"SALE10"},
		Method:   model.MethodCustom,
		Scope:    model.ScopeProduct,
		StartsAt: time.Now().UTC(),
		CustomerGets: model.CustomerGetsRequest{
			Percentage: 10,
		},
	}

	discountRepo.On("GetByShopAndCode", ctx, testShop, "SALE10").Return(nil, nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("CreateBasicCode", ctx, mock.Anything, mock.MatchedBy(func(input shopify.DiscountCodeBasicInput) bool {
		// Percentage travels as a fraction; no ids means all items.
		return input.Code == "SALE10" &&
			input.CustomerGets.Value.Percentage != nil &&
			*input.CustomerGets.Value.Percentage == 0.1 &&
			input.CustomerGets.Items.All
	})).Return(&shopify.RemoteDiscount{ID: "gid://shopify/DiscountCodeNode/111", Code: "SALE10"}, nil)
	discountRepo.On("Create", ctx, mock.MatchedBy(func(d *model.DiscountCode) bool {
		// The mirror stores the raw percentage and the kind tag.
		return d.Shop == testShop &&
			d.Code == "SALE10" &&
			d.DiscountAmount == 10 &&
			d.Kind == model.KindCustomBasic &&
			!d.IsMultiple
	})).Return(nil)

	result := newTestService(discountRepo, sessionRepo, gateway, nil).CreateBasic(ctx, req)

	require.True(t, result.Success)
	discountRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestDiscountService_CreateBasic_DuplicateCode(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	req := &model.CreateDiscountRequest{
		Shop:         testShop,
		Title:        "Summer Sale",
		Codes:        []string{"SALE10"},
		Method:       model.MethodCustom,
		Scope:        model.ScopeProduct,
		CustomerGets: model.CustomerGetsRequest{Percentage: 10},
	}

	discountRepo.On("GetByShopAndCode", ctx, testShop, "SALE10").Return(&model.DiscountCode{
		ID:   uuid.New(),
		Shop: testShop,
		Code: "SALE10",
	}, nil)

	result := newTestService(discountRepo, sessionRepo, gateway, nil).CreateBasic(ctx, req)

	assert.False(t, result.Success)
	assert.Equal(t, model.ErrCodeAlreadyExists.Message, result.Message)
	// The duplicate is caught before any remote call.
	gateway.AssertNotCalled(t, "CreateBasicCode", mock.Anything, mock.Anything, mock.Anything)
	sessionRepo.AssertNotCalled(t, "GetByShop", mock.Anything, mock.Anything)
}

func TestDiscountService_CreateBasic_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.CreateDiscountRequest)
		message string
	}{
		{
			name:    "missing shop",
			mutate:  func(r *model.CreateDiscountRequest) { r.Shop = "" },
			message: model.ErrMissingShop.Message,
		},
		{
			name:    "missing title",
			mutate:  func(r *model.CreateDiscountRequest) { r.Title = "" },
			message: model.ErrMissingTitle.Message,
		},
		{
			name:    "custom without codes",
			mutate:  func(r *model.CreateDiscountRequest) { r.Codes = nil },
			message: model.ErrMissingCode.Message,
		},
		{
			name:    "missing percentage",
			mutate:  func(r *model.CreateDiscountRequest) { r.CustomerGets.Percentage = 0 },
			message: model.ErrMissingPercentage.Message,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &model.CreateDiscountRequest{
				Shop:         testShop,
				Title:        "Summer Sale",
				Codes:        []string{"SALE10"},
				Method:       model.MethodCustom,
				Scope:        model.ScopeProduct,
				CustomerGets: model.CustomerGetsRequest{Percentage: 10},
			}
			tt.mutate(req)

			svc := newTestService(new(MockDiscountRepository), new(MockSessionRepository), new(MockGateway), nil)
			result := svc.CreateBasic(context.Background(), req)

			assert.False(t, result.Success)
			assert.Equal(t, tt.message, result.Message)
		})
	}
}

func TestDiscountService_CreateBasic_NoSession(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	req := &model.CreateDiscountRequest{
		Shop:         testShop,
		Title:        "Summer Sale",
		Codes:        []string{"SALE10"},
		Method:       model.MethodCustom,
		Scope:        model.ScopeProduct,
		CustomerGets: model.CustomerGetsRequest{Percentage: 10},
	}

	discountRepo.On("GetByShopAndCode", ctx, testShop, "SALE10").Return(nil, nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(nil, nil)

	result := newTestService(discountRepo, sessionRepo, gateway, nil).CreateBasic(ctx, req)

	assert.False(t, result.Success)
	// Auth failures surface the generic message, not the cause.
	assert.Equal(t, model.GenericFailure, result.Message)
	gateway.AssertNotCalled(t, "CreateBasicCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestDiscountService_CreateBasic_MultiCodeDiff(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	req := &model.CreateDiscountRequest{
		Shop:         testShop,
		Title:        "Bulk Group",
		Codes:        []string{"GROUP-1", "GROUP-2", "GROUP-3"},
		Method:       model.MethodCustom,
		Scope:        model.ScopeOrder,
		CustomerGets: model.CustomerGetsRequest{Percentage: 15},
	}

	remoteID := "gid://shopify/DiscountCodeNode/222"
	discountRepo.On("GetByShopAndCode", ctx, testShop, "GROUP-1").Return(nil, nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("CreateBasicCode", ctx, mock.Anything, mock.Anything).
		Return(&shopify.RemoteDiscount{ID: remoteID, Code: "GROUP-1"}, nil)
	// GROUP-2 already exists remotely, only GROUP-3 should be added.
	gateway.On("ListRedeemCodes", ctx, mock.Anything, remoteID).Return([]string{"GROUP-1", "GROUP-2"}, nil)
	gateway.On("AddRedeemCodes", ctx, mock.Anything, remoteID, []string{"GROUP-3"}).Return(nil)
	discountRepo.On("Create", ctx, mock.MatchedBy(func(d *model.DiscountCode) bool {
		return d.IsMultiple
	})).Return(nil)

	result := newTestService(discountRepo, sessionRepo, gateway, nil).CreateBasic(ctx, req)

	require.True(t, result.Success)
	gateway.AssertExpectations(t)
}

func TestDiscountService_CreateBasic_ShippingFlatAmount(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	req := &model.CreateDiscountRequest{
		Shop:   testShop,
		Title:  "Free-ish Shipping",
		Codes:  []string{"SHIP5"},
		Method: model.MethodCustom,
		Scope:  model.ScopeShipping,
		CustomerGets: model.CustomerGetsRequest{
			DiscountAmount: 5,
		},
	}

	discountRepo.On("GetByShopAndCode", ctx, testShop, "SHIP5").Return(nil, nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("CreateBasicCode", ctx, mock.Anything, mock.MatchedBy(func(input shopify.DiscountCodeBasicInput) bool {
		v := input.CustomerGets.Value
		return v.Percentage == nil && v.DiscountAmount != nil && v.DiscountAmount.Amount == 5
	})).Return(&shopify.RemoteDiscount{ID: "gid://shopify/DiscountCodeNode/333"}, nil)
	discountRepo.On("Create", ctx, mock.MatchedBy(func(d *model.DiscountCode) bool {
		return d.DiscountType == model.TypeAmount && d.DiscountAmount == 5
	})).Return(nil)

	result := newTestService(discountRepo, sessionRepo, gateway, nil).CreateBasic(ctx, req)

	require.True(t, result.Success)
	gateway.AssertExpectations(t)
}

func TestDiscountService_CreateBasic_Automatic(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	req := &model.CreateDiscountRequest{
		Shop:         testShop,
		Title:        "Auto Sale",
		Method:       model.MethodAutomatic,
		Scope:        model.ScopeProduct,
		CustomerGets: model.CustomerGetsRequest{Percentage: 20},
	}

	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("CreateBasicAutomatic", ctx, mock.Anything, mock.Anything).
		Return(&shopify.RemoteDiscount{ID: "gid://shopify/DiscountAutomaticNode/444"}, nil)
	discountRepo.On("Create", ctx, mock.MatchedBy(func(d *model.DiscountCode) bool {
		return d.Kind == model.KindAutomaticBasic && d.Code == ""
	})).Return(nil)

	result := newTestService(discountRepo, sessionRepo, gateway, nil).CreateBasic(ctx, req)

	require.True(t, result.Success)
	// Automatic discounts carry no code, so no uniqueness check runs.
	discountRepo.AssertNotCalled(t, "GetByShopAndCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestDiscountService_CreateBxgy_Success(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	req := &model.CreateBxgyRequest{
		Shop:   testShop,
		Title:  "Buy 2 Get 1",
		Codes:  []string{"B2G1"},
		Method: model.MethodCustom,
		CustomerBuys: model.CustomerBuysRequest{
			Quantity:   2,
			ProductIDs: []string{"111"},
		},
		CustomerGets: model.CustomerGetsRequest{
			Quantity:   1,
			ProductIDs: []string{"222"},
		},
	}

	discountRepo.On("GetByShopAndCode", ctx, testShop, "B2G1").Return(nil, nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("CreateBxgyCode", ctx, mock.Anything, mock.MatchedBy(func(input shopify.DiscountCodeBxgyInput) bool {
		return input.CustomerBuys.Value.Quantity == "2" &&
			input.CustomerGets.Value.DiscountOnQuantity.Quantity == "1" &&
			*input.CustomerGets.Value.DiscountOnQuantity.Effect.Percentage == 1.0
	})).Return(&shopify.RemoteDiscount{ID: "gid://shopify/DiscountCodeNode/555"}, nil)
	discountRepo.On("Create", ctx, mock.MatchedBy(func(d *model.DiscountCode) bool {
		return d.Kind == model.KindCustomBxgy && d.DiscountScope == model.ScopeBuyXGetY
	})).Return(nil)

	result := newTestService(discountRepo, sessionRepo, gateway, nil).CreateBxgy(ctx, req)

	require.True(t, result.Success)
	gateway.AssertExpectations(t)
}

func TestDiscountService_Delete_Success(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	rowID := uuid.New()
	remoteID := "gid://shopify/DiscountCodeNode/666"
	row := &model.DiscountCode{
		ID:         rowID,
		Shop:       testShop,
		Code:       "SALE10",
		DiscountID: remoteID,
		Kind:       model.KindCustomBasic,
	}

	discountRepo.On("GetByID", ctx, testShop, rowID).Return(row, nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("DeleteCode", ctx, mock.Anything, remoteID).Return(remoteID, nil)
	discountRepo.On("Delete", ctx, testShop, rowID).Return(nil)

	result := newTestService(discountRepo, sessionRepo, gateway, nil).Delete(ctx, &model.DeleteDiscountRequest{
		Shop:       testShop,
		ID:         rowID.String(),
		Code:       "SALE10",
		DiscountID: remoteID,
	})

	require.True(t, result.Success)
	discountRepo.AssertExpectations(t)
}

func TestDiscountService_Delete_IdentifierMismatch(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	rowID := uuid.New()
	row := &model.DiscountCode{
		ID:         rowID,
		Shop:       testShop,
		Code:       "SALE10",
		DiscountID: "gid://shopify/DiscountCodeNode/666",
		Kind:       model.KindCustomBasic,
	}

	discountRepo.On("GetByID", ctx, testShop, rowID).Return(row, nil)

	result := newTestService(discountRepo, sessionRepo, gateway, nil).Delete(ctx, &model.DeleteDiscountRequest{
		Shop:       testShop,
		ID:         rowID.String(),
		Code:       "OTHERCODE",
		DiscountID: "gid://shopify/DiscountCodeNode/666",
	})

	assert.False(t, result.Success)
	assert.Equal(t, model.ErrDiscountNotFound.Message, result.Message)
	// A mismatch must never reach the platform.
	gateway.AssertNotCalled(t, "DeleteCode", mock.Anything, mock.Anything, mock.Anything)
	discountRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDiscountService_Delete_RemoteFailureKeepsRow(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	rowID := uuid.New()
	remoteID := "gid://shopify/DiscountAutomaticNode/777"
	row := &model.DiscountCode{
		ID:         rowID,
		Shop:       testShop,
		DiscountID: remoteID,
		Kind:       model.KindAutomaticBasic,
	}

	discountRepo.On("GetByID", ctx, testShop, rowID).Return(row, nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("DeleteAutomatic", ctx, mock.Anything, remoteID).Return("", errors.New("throttled"))

	result := newTestService(discountRepo, sessionRepo, gateway, nil).Delete(ctx, &model.DeleteDiscountRequest{
		Shop:       testShop,
		ID:         rowID.String(),
		DiscountID: remoteID,
	})

	assert.False(t, result.Success)
	assert.Equal(t, model.GenericFailure, result.Message)
	discountRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDiscountService_DeleteAll_PartialFailure(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	okID := uuid.New()
	badID := uuid.New()
	rows := []model.DiscountCode{
		{ID: okID, Shop: testShop, DiscountID: "gid://shopify/DiscountCodeNode/1", Kind: model.KindCustomBasic},
		{ID: badID, Shop: testShop, DiscountID: "gid://shopify/DiscountAutomaticNode/2", Kind: model.KindAutomaticBasic},
	}

	discountRepo.On("ListByShop", ctx, testShop).Return(rows, nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("DeleteCode", ctx, mock.Anything, rows[0].DiscountID).Return(rows[0].DiscountID, nil)
	gateway.On("DeleteAutomatic", ctx, mock.Anything, rows[1].DiscountID).Return("", errors.New("gone"))
	discountRepo.On("Delete", ctx, testShop, okID).Return(nil)

	result := newTestService(discountRepo, sessionRepo, gateway, nil).DeleteAll(ctx, testShop)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Deleted)
	assert.Equal(t, 1, result.Failed)
	// The failed row stays in the mirror.
	discountRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, badID)
}

func TestDiscountService_ImportCodes(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)
	loader := new(MockCodeLoader)

	remoteID := "gid://shopify/DiscountCodeNode/888"
	row := &model.DiscountCode{
		ID:         uuid.New(),
		Shop:       testShop,
		Code:       "BULK",
		DiscountID: remoteID,
		Kind:       model.KindCustomBasic,
	}

	discountRepo.On("GetByDiscountID", ctx, testShop, remoteID).Return(row, nil)
	loader.On("Load", ctx, "codes-batch-1.gz").Return(codes.NewCodeSetFrom([]string{"BULK-A", "BULK-B"}), nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("ListRedeemCodes", ctx, mock.Anything, remoteID).Return([]string{"BULK"}, nil)
	gateway.On("AddRedeemCodes", ctx, mock.Anything, remoteID, mock.MatchedBy(func(added []string) bool {
		return len(added) == 2
	})).Return(nil)
	discountRepo.On("Update", ctx, mock.MatchedBy(func(d *model.DiscountCode) bool {
		return d.IsMultiple
	})).Return(nil)

	result := newTestService(discountRepo, sessionRepo, gateway, loader).ImportCodes(ctx, &model.ImportCodesRequest{
		Shop:       testShop,
		DiscountID: remoteID,
		File:       "codes-batch-1.gz",
	})

	require.True(t, result.Success)
	gateway.AssertExpectations(t)
	loader.AssertExpectations(t)
}

func TestDiscountService_ImportCodes_AutomaticRejected(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	loader := new(MockCodeLoader)

	remoteID := "gid://shopify/DiscountAutomaticNode/999"
	row := &model.DiscountCode{
		ID:         uuid.New(),
		Shop:       testShop,
		DiscountID: remoteID,
		Kind:       model.KindAutomaticBasic,
	}
	discountRepo.On("GetByDiscountID", ctx, testShop, remoteID).Return(row, nil)

	result := newTestService(discountRepo, new(MockSessionRepository), new(MockGateway), loader).ImportCodes(ctx, &model.ImportCodesRequest{
		Shop:       testShop,
		DiscountID: remoteID,
		File:       "codes.gz",
	})

	assert.False(t, result.Success)
	loader.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestDiscountService_UpdateBasic_Success(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	sessionRepo := new(MockSessionRepository)
	gateway := new(MockGateway)

	rowID := uuid.New()
	remoteID := "gid://shopify/DiscountCodeNode/121"
	row := &model.DiscountCode{
		ID:         rowID,
		Shop:       testShop,
		Code:       "SALE10",
		DiscountID: remoteID,
		Kind:       model.KindCustomBasic,
	}

	req := &model.UpdateDiscountRequest{
		Shop:       testShop,
		ID:         rowID.String(),
		DiscountID: remoteID,
		CreateDiscountRequest: model.CreateDiscountRequest{
			Title:        "Bigger Sale",
			Codes:        []string{"SALE15"},
			Method:       model.MethodCustom,
			Scope:        model.ScopeProduct,
			CustomerGets: model.CustomerGetsRequest{Percentage: 15},
		},
	}

	discountRepo.On("GetByID", ctx, testShop, rowID).Return(row, nil)
	sessionRepo.On("GetByShop", ctx, testShop).Return(testSession(), nil)
	gateway.On("UpdateBasicCode", ctx, mock.Anything, remoteID, mock.MatchedBy(func(input shopify.DiscountCodeBasicInput) bool {
		return input.Code == "SALE15" && *input.CustomerGets.Value.Percentage == 0.15
	})).Return(&shopify.RemoteDiscount{ID: remoteID}, nil)
	discountRepo.On("Update", ctx, mock.MatchedBy(func(d *model.DiscountCode) bool {
		return d.Code == "SALE15" && d.DiscountAmount == 15
	})).Return(nil)

	result := newTestService(discountRepo, sessionRepo, gateway, nil).UpdateBasic(ctx, req)

	require.True(t, result.Success)
	gateway.AssertExpectations(t)
}

func TestDiscountService_UpdateBasic_RemoteIDMismatch(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	gateway := new(MockGateway)

	rowID := uuid.New()
	row := &model.DiscountCode{
		ID:         rowID,
		Shop:       testShop,
		DiscountID: "gid://shopify/DiscountCodeNode/121",
		Kind:       model.KindCustomBasic,
	}
	discountRepo.On("GetByID", ctx, testShop, rowID).Return(row, nil)

	req := &model.UpdateDiscountRequest{
		Shop:       testShop,
		ID:         rowID.String(),
		DiscountID: "gid://shopify/DiscountCodeNode/999",
		CreateDiscountRequest: model.CreateDiscountRequest{
			Title:        "Sale",
			Codes:        []string{"SALE10"},
			Method:       model.MethodCustom,
			Scope:        model.ScopeProduct,
			CustomerGets: model.CustomerGetsRequest{Percentage: 10},
		},
	}

	result := newTestService(discountRepo, new(MockSessionRepository), gateway, nil).UpdateBasic(ctx, req)

	assert.False(t, result.Success)
	assert.Equal(t, model.ErrDiscountNotFound.Message, result.Message)
	gateway.AssertNotCalled(t, "UpdateBasicCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
