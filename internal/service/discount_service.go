package service

import (
	"context"
	"fmt"
	"time"

	"discount-manager/internal/codes"
	"discount-manager/internal/model"
	"discount-manager/internal/repository"
	"discount-manager/internal/shopify"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Platform limit on redeem codes per bulk-add call.
const redeemCodeBatchSize = 100

// discountService implements DiscountService.
type discountService struct {
	discountRepo repository.DiscountRepository
	sessionRepo  repository.SessionRepository
	gateway      shopify.Gateway
	codeLoader   codes.Loader
	logger       zerolog.Logger
}

// NewDiscountService creates a new discount service.
func NewDiscountService(
	discountRepo repository.DiscountRepository,
	sessionRepo repository.SessionRepository,
	gateway shopify.Gateway,
	codeLoader codes.Loader,
	logger zerolog.Logger,
) DiscountService {
	return &discountService{
		discountRepo: discountRepo,
		sessionRepo:  sessionRepo,
		gateway:      gateway,
		codeLoader:   codeLoader,
		logger:       logger.With().Str("service", "discount").Logger(),
	}
}

// session resolves the shop's access token. A missing session is an
// authentication failure, not a validation failure.
func (s *discountService) session(ctx context.Context, shop string) (*model.Session, error) {
	sess, err := s.sessionRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, model.ErrAccessTokenNotFound
	}
	return sess, nil
}

// validateCreate checks the minimally required fields of a basic create.
func validateCreate(req *model.CreateDiscountRequest) error {
	if req.Shop == "" {
		return model.ErrMissingShop
	}
	if req.Title == "" {
		return model.ErrMissingTitle
	}
	if req.Method == model.MethodCustom && len(req.Codes) == 0 {
		return model.ErrMissingCode
	}
	if req.Scope == model.ScopeShipping {
		if req.CustomerGets.DiscountAmount <= 0 {
			return model.NewDomainError(model.ErrCodeMissingField, "Shipping discount amount is required")
		}
	} else if req.CustomerGets.Percentage <= 0 {
		return model.ErrMissingPercentage
	}
	for _, code := range req.Codes {
		if err := codes.ValidateFormat(code); err != nil {
			return model.NewDomainError(model.ErrCodeMissingField, err.Error())
		}
	}
	return nil
}

// targetSelection normalises the UI's id lists into the wire selection.
func targetSelection(gets model.CustomerGetsRequest, removeProducts, removeCollections []string) shopify.TargetSelection {
	return shopify.TargetSelection{
		AddProductIDs:       shopify.ProductGIDs(gets.ProductIDs),
		RemoveProductIDs:    shopify.ProductGIDs(removeProducts),
		AddCollectionIDs:    shopify.CollectionGIDs(gets.CollectionIDs),
		RemoveCollectionIDs: shopify.CollectionGIDs(removeCollections),
	}
}

// basicValue maps the UI discount value onto the wire value. Percentages are
// submitted as a fraction; shipping discounts carry a flat amount instead.
func basicValue(req *model.CreateDiscountRequest) *shopify.DiscountCustomerGetsValueInput {
	if req.Scope == model.ScopeShipping {
		return &shopify.DiscountCustomerGetsValueInput{
			DiscountAmount: &shopify.DiscountAmountInput{Amount: req.CustomerGets.DiscountAmount},
		}
	}
	fraction := req.CustomerGets.Percentage / 100
	return &shopify.DiscountCustomerGetsValueInput{Percentage: &fraction}
}

func usageLimitPtr(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}

// localAmount is the value mirrored into the local row: the raw percentage,
// or the flat amount for shipping scope.
func localAmount(req *model.CreateDiscountRequest) (float64, model.DiscountType) {
	if req.Scope == model.ScopeShipping {
		return req.CustomerGets.DiscountAmount, model.TypeAmount
	}
	return req.CustomerGets.Percentage, model.TypePercent
}

// CreateBasic creates a basic (product/order/shipping) discount.
func (s *discountService) CreateBasic(ctx context.Context, req *model.CreateDiscountRequest) *model.CommandResult {
	if err := validateCreate(req); err != nil {
		return model.Failed(err.Error())
	}

	// Reject duplicate codes before touching the platform.
	if req.Method == model.MethodCustom {
		existing, err := s.discountRepo.GetByShopAndCode(ctx, req.Shop, req.PrimaryCode())
		if err != nil {
			s.logger.Error().Err(err).Str("shop", req.Shop).Msg("uniqueness check failed")
			return model.Failed(model.GenericFailure)
		}
		if existing != nil {
			return model.Failed(model.ErrCodeAlreadyExists.Message)
		}
	}

	sess, err := s.session(ctx, req.Shop)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Msg("failed to resolve access token")
		return model.Failed(model.GenericFailure)
	}

	target := targetSelection(req.CustomerGets, req.RemoveProductIDs, req.RemoveCollections)
	gets := &shopify.DiscountCustomerGetsInput{
		Value: basicValue(req),
		Items: target.Items(),
	}
	startsAt := req.StartsAt

	var (
		remote *shopify.RemoteDiscount
		kind   model.DiscountKind
	)
	if req.Method == model.MethodCustom {
		kind = model.KindCustomBasic
		input := shopify.DiscountCodeBasicInput{
			Title:                  req.Title,
			Code:                   req.PrimaryCode(),
			StartsAt:               &startsAt,
			EndsAt:                 req.EndsAt,
			UsageLimit:             usageLimitPtr(req.UsageLimit),
			AppliesOncePerCustomer: req.OncePerCustomer,
			CustomerSelection:      shopify.CustomerSelection(shopify.CustomerGIDs(req.AddCustomerIDs), shopify.CustomerGIDs(req.RemoveCustomerIDs)),
			CustomerGets:           gets,
		}
		remote, err = s.gateway.CreateBasicCode(ctx, sess, input)
	} else {
		kind = model.KindAutomaticBasic
		input := shopify.DiscountAutomaticBasicInput{
			Title:        req.Title,
			StartsAt:     &startsAt,
			EndsAt:       req.EndsAt,
			CustomerGets: gets,
		}
		remote, err = s.gateway.CreateBasicAutomatic(ctx, sess, input)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("title", req.Title).Msg("remote discount create failed")
		return model.Failed(model.GenericFailure)
	}

	// Additional codes beyond the primary become redeem codes under the
	// same parent discount.
	if req.Method == model.MethodCustom && len(req.Codes) > 1 {
		if err := s.ensureRedeemCodes(ctx, sess, remote.ID, req.Codes[1:]); err != nil {
			s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", remote.ID).Msg("bulk redeem code creation failed")
			return model.Failed(model.GenericFailure)
		}
	}

	amount, amountType := localAmount(req)
	now := time.Now().UTC()
	row := &model.DiscountCode{
		ID:             uuid.New(),
		Shop:           req.Shop,
		Code:           req.PrimaryCode(),
		Title:          req.Title,
		DiscountID:     remote.ID,
		Kind:           kind,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		DiscountAmount: amount,
		DiscountType:   amountType,
		DiscountMethod: req.Method,
		DiscountScope:  req.Scope,
		UsageLimit:     req.UsageLimit,
		IsActive:       true,
		IsMultiple:     len(req.Codes) > 1,
		AdvancedRule:   req.AdvancedRule,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.discountRepo.Create(ctx, row); err != nil {
		// Remote create succeeded but the mirror write failed; the create
		// webhook will reconcile the row.
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", remote.ID).Msg("failed to persist discount mirror")
		return model.Failed(model.GenericFailure)
	}

	s.logger.Info().
		Str("shop", req.Shop).
		Str("discount_id", remote.ID).
		Str("kind", string(kind)).
		Msg("discount created")

	return model.Succeeded("Discount created successfully")
}

// ensureRedeemCodes adds the requested codes that the discount does not
// already carry remotely. Diffing first keeps retries from tripping
// duplicate-code errors.
func (s *discountService) ensureRedeemCodes(ctx context.Context, sess *model.Session, discountID string, requested []string) error {
	existing, err := s.gateway.ListRedeemCodes(ctx, sess, discountID)
	if err != nil {
		return fmt.Errorf("failed to list existing redeem codes: %w", err)
	}

	missing := codes.Diff(requested, codes.NewCodeSetFrom(existing))
	if len(missing) == 0 {
		return nil
	}

	for start := 0; start < len(missing); start += redeemCodeBatchSize {
		end := start + redeemCodeBatchSize
		if end > len(missing) {
			end = len(missing)
		}
		if err := s.gateway.AddRedeemCodes(ctx, sess, discountID, missing[start:end]); err != nil {
			return fmt.Errorf("failed to add redeem codes: %w", err)
		}
	}

	s.logger.Info().
		Str("discount_id", discountID).
		Int("requested", len(requested)).
		Int("added", len(missing)).
		Msg("redeem codes ensured")

	return nil
}

// validateBxgy checks the minimally required fields of a Bxgy create.
func validateBxgy(req *model.CreateBxgyRequest) error {
	if req.Shop == "" {
		return model.ErrMissingShop
	}
	if req.Title == "" {
		return model.ErrMissingTitle
	}
	if req.Method == model.MethodCustom && len(req.Codes) == 0 {
		return model.ErrMissingCode
	}
	if req.CustomerBuys.Quantity <= 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Customer buys quantity is required")
	}
	if req.CustomerGets.Quantity <= 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Customer gets quantity is required")
	}
	for _, code := range req.Codes {
		if err := codes.ValidateFormat(code); err != nil {
			return model.NewDomainError(model.ErrCodeMissingField, err.Error())
		}
	}
	return nil
}

// bxgySides renders the two symmetric item groups of a Bxgy discount.
func bxgySides(req *model.CreateBxgyRequest) (*shopify.DiscountCustomerBuysInput, *shopify.DiscountCustomerGetsBxgyInput) {
	buysTarget := shopify.TargetSelection{
		AddProductIDs:    shopify.ProductGIDs(req.CustomerBuys.ProductIDs),
		AddCollectionIDs: shopify.CollectionGIDs(req.CustomerBuys.CollectionIDs),
	}
	getsTarget := shopify.TargetSelection{
		AddProductIDs:    shopify.ProductGIDs(req.CustomerGets.ProductIDs),
		AddCollectionIDs: shopify.CollectionGIDs(req.CustomerGets.CollectionIDs),
	}

	// Reward is a percentage off the "get" quantity; 100% when unspecified
	// makes the reward items free.
	fraction := 1.0
	if req.CustomerGets.Percentage > 0 {
		fraction = req.CustomerGets.Percentage / 100
	}

	buys := &shopify.DiscountCustomerBuysInput{
		Value: &shopify.DiscountCustomerBuysValueInput{Quantity: fmt.Sprintf("%d", req.CustomerBuys.Quantity)},
		Items: buysTarget.Items(),
	}
	gets := &shopify.DiscountCustomerGetsBxgyInput{
		Value: &shopify.DiscountCustomerGetsBxgyValueInput{
			DiscountOnQuantity: &shopify.DiscountOnQuantityInput{
				Quantity: fmt.Sprintf("%d", req.CustomerGets.Quantity),
				Effect:   &shopify.DiscountEffectInput{Percentage: &fraction},
			},
		},
		Items: getsTarget.Items(),
	}
	return buys, gets
}

// CreateBxgy creates a Buy-X-Get-Y discount.
func (s *discountService) CreateBxgy(ctx context.Context, req *model.CreateBxgyRequest) *model.CommandResult {
	if err := validateBxgy(req); err != nil {
		return model.Failed(err.Error())
	}

	if req.Method == model.MethodCustom {
		existing, err := s.discountRepo.GetByShopAndCode(ctx, req.Shop, req.PrimaryCode())
		if err != nil {
			s.logger.Error().Err(err).Str("shop", req.Shop).Msg("uniqueness check failed")
			return model.Failed(model.GenericFailure)
		}
		if existing != nil {
			return model.Failed(model.ErrCodeAlreadyExists.Message)
		}
	}

	sess, err := s.session(ctx, req.Shop)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Msg("failed to resolve access token")
		return model.Failed(model.GenericFailure)
	}

	buys, gets := bxgySides(req)
	startsAt := req.StartsAt

	var (
		remote *shopify.RemoteDiscount
		kind   model.DiscountKind
	)
	if req.Method == model.MethodCustom {
		kind = model.KindCustomBxgy
		input := shopify.DiscountCodeBxgyInput{
			Title:             req.Title,
			Code:              req.PrimaryCode(),
			StartsAt:          &startsAt,
			EndsAt:            req.EndsAt,
			UsageLimit:        usageLimitPtr(req.UsageLimit),
			UsesPerOrderLimit: usageLimitPtr(req.UsesPerOrder),
			CustomerBuys:      buys,
			CustomerGets:      gets,
		}
		remote, err = s.gateway.CreateBxgyCode(ctx, sess, input)
	} else {
		kind = model.KindAutomaticBxgy
		input := shopify.DiscountAutomaticBxgyInput{
			Title:             req.Title,
			StartsAt:          &startsAt,
			EndsAt:            req.EndsAt,
			UsesPerOrderLimit: usageLimitPtr(req.UsesPerOrder),
			CustomerBuys:      buys,
			CustomerGets:      gets,
		}
		remote, err = s.gateway.CreateBxgyAutomatic(ctx, sess, input)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("title", req.Title).Msg("remote bxgy create failed")
		return model.Failed(model.GenericFailure)
	}

	if req.Method == model.MethodCustom && len(req.Codes) > 1 {
		if err := s.ensureRedeemCodes(ctx, sess, remote.ID, req.Codes[1:]); err != nil {
			s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", remote.ID).Msg("bulk redeem code creation failed")
			return model.Failed(model.GenericFailure)
		}
	}

	now := time.Now().UTC()
	row := &model.DiscountCode{
		ID:             uuid.New(),
		Shop:           req.Shop,
		Code:           req.PrimaryCode(),
		Title:          req.Title,
		DiscountID:     remote.ID,
		Kind:           kind,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		DiscountAmount: req.CustomerGets.Percentage,
		DiscountType:   model.TypePercent,
		DiscountMethod: req.Method,
		DiscountScope:  model.ScopeBuyXGetY,
		UsageLimit:     req.UsageLimit,
		IsActive:       true,
		IsMultiple:     len(req.Codes) > 1,
		AdvancedRule:   req.AdvancedRule,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.discountRepo.Create(ctx, row); err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", remote.ID).Msg("failed to persist discount mirror")
		return model.Failed(model.GenericFailure)
	}

	s.logger.Info().
		Str("shop", req.Shop).
		Str("discount_id", remote.ID).
		Str("kind", string(kind)).
		Msg("bxgy discount created")

	return model.Succeeded("Discount created successfully")
}

// UpdateBasic updates an existing basic discount.
func (s *discountService) UpdateBasic(ctx context.Context, req *model.UpdateDiscountRequest) *model.CommandResult {
	req.CreateDiscountRequest.Shop = req.Shop
	if err := validateCreate(&req.CreateDiscountRequest); err != nil {
		return model.Failed(err.Error())
	}

	rowID, err := uuid.Parse(req.ID)
	if err != nil {
		return model.Failed(model.ErrDiscountNotFound.Message)
	}
	row, err := s.discountRepo.GetByID(ctx, req.Shop, rowID)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("id", req.ID).Msg("failed to load discount for update")
		return model.Failed(model.GenericFailure)
	}
	if row == nil || row.DiscountID != req.DiscountID {
		return model.Failed(model.ErrDiscountNotFound.Message)
	}

	sess, err := s.session(ctx, req.Shop)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Msg("failed to resolve access token")
		return model.Failed(model.GenericFailure)
	}

	target := targetSelection(req.CustomerGets, req.RemoveProductIDs, req.RemoveCollections)
	gets := &shopify.DiscountCustomerGetsInput{
		Value: basicValue(&req.CreateDiscountRequest),
		Items: target.Items(),
	}
	startsAt := req.StartsAt

	if row.Kind.IsCustom() {
		input := shopify.DiscountCodeBasicInput{
			Title:                  req.Title,
			Code:                   req.PrimaryCode(),
			StartsAt:               &startsAt,
			EndsAt:                 req.EndsAt,
			UsageLimit:             usageLimitPtr(req.UsageLimit),
			AppliesOncePerCustomer: req.OncePerCustomer,
			CustomerSelection:      shopify.CustomerSelection(shopify.CustomerGIDs(req.AddCustomerIDs), shopify.CustomerGIDs(req.RemoveCustomerIDs)),
			CustomerGets:           gets,
		}
		_, err = s.gateway.UpdateBasicCode(ctx, sess, row.DiscountID, input)
	} else {
		input := shopify.DiscountAutomaticBasicInput{
			Title:        req.Title,
			StartsAt:     &startsAt,
			EndsAt:       req.EndsAt,
			CustomerGets: gets,
		}
		_, err = s.gateway.UpdateBasicAutomatic(ctx, sess, row.DiscountID, input)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", row.DiscountID).Msg("remote discount update failed")
		return model.Failed(model.GenericFailure)
	}

	amount, amountType := localAmount(&req.CreateDiscountRequest)
	row.Code = req.PrimaryCode()
	row.Title = req.Title
	row.StartsAt = req.StartsAt
	row.EndsAt = req.EndsAt
	row.DiscountAmount = amount
	row.DiscountType = amountType
	row.DiscountScope = req.Scope
	row.UsageLimit = req.UsageLimit
	if req.AdvancedRule != nil {
		row.AdvancedRule = req.AdvancedRule
	}
	if err := s.discountRepo.Update(ctx, row); err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", row.DiscountID).Msg("failed to update discount mirror")
		return model.Failed(model.GenericFailure)
	}

	return model.Succeeded("Discount updated successfully")
}

// UpdateBxgy updates an existing Buy-X-Get-Y discount.
func (s *discountService) UpdateBxgy(ctx context.Context, req *model.UpdateBxgyRequest) *model.CommandResult {
	req.CreateBxgyRequest.Shop = req.Shop
	if err := validateBxgy(&req.CreateBxgyRequest); err != nil {
		return model.Failed(err.Error())
	}

	rowID, err := uuid.Parse(req.ID)
	if err != nil {
		return model.Failed(model.ErrDiscountNotFound.Message)
	}
	row, err := s.discountRepo.GetByID(ctx, req.Shop, rowID)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("id", req.ID).Msg("failed to load discount for update")
		return model.Failed(model.GenericFailure)
	}
	if row == nil || row.DiscountID != req.DiscountID {
		return model.Failed(model.ErrDiscountNotFound.Message)
	}

	sess, err := s.session(ctx, req.Shop)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Msg("failed to resolve access token")
		return model.Failed(model.GenericFailure)
	}

	buys, gets := bxgySides(&req.CreateBxgyRequest)
	startsAt := req.StartsAt

	if row.Kind.IsCustom() {
		input := shopify.DiscountCodeBxgyInput{
			Title:             req.Title,
			Code:              req.PrimaryCode(),
			StartsAt:          &startsAt,
			EndsAt:            req.EndsAt,
			UsageLimit:        usageLimitPtr(req.UsageLimit),
			UsesPerOrderLimit: usageLimitPtr(req.UsesPerOrder),
			CustomerBuys:      buys,
			CustomerGets:      gets,
		}
		_, err = s.gateway.UpdateBxgyCode(ctx, sess, row.DiscountID, input)
	} else {
		input := shopify.DiscountAutomaticBxgyInput{
			Title:             req.Title,
			StartsAt:          &startsAt,
			EndsAt:            req.EndsAt,
			UsesPerOrderLimit: usageLimitPtr(req.UsesPerOrder),
			CustomerBuys:      buys,
			CustomerGets:      gets,
		}
		_, err = s.gateway.UpdateBxgyAutomatic(ctx, sess, row.DiscountID, input)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", row.DiscountID).Msg("remote bxgy update failed")
		return model.Failed(model.GenericFailure)
	}

	row.Code = req.PrimaryCode()
	row.Title = req.Title
	row.StartsAt = req.StartsAt
	row.EndsAt = req.EndsAt
	row.DiscountAmount = req.CustomerGets.Percentage
	row.UsageLimit = req.UsageLimit
	if req.AdvancedRule != nil {
		row.AdvancedRule = req.AdvancedRule
	}
	if err := s.discountRepo.Update(ctx, row); err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", row.DiscountID).Msg("failed to update discount mirror")
		return model.Failed(model.GenericFailure)
	}

	return model.Succeeded("Discount updated successfully")
}

// Delete removes a single discount. All three identifiers must match the
// local row before any remote call is made.
func (s *discountService) Delete(ctx context.Context, req *model.DeleteDiscountRequest) *model.CommandResult {
	if req.Shop == "" {
		return model.Failed(model.ErrMissingShop.Message)
	}

	rowID, err := uuid.Parse(req.ID)
	if err != nil {
		return model.Failed(model.ErrDiscountNotFound.Message)
	}
	row, err := s.discountRepo.GetByID(ctx, req.Shop, rowID)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("id", req.ID).Msg("failed to load discount for delete")
		return model.Failed(model.GenericFailure)
	}
	if row == nil || row.Code != req.Code || row.DiscountID != req.DiscountID {
		return model.Failed(model.ErrDiscountNotFound.Message)
	}

	sess, err := s.session(ctx, req.Shop)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Msg("failed to resolve access token")
		return model.Failed(model.GenericFailure)
	}

	if _, err := s.deleteRemote(ctx, sess, row); err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", row.DiscountID).Msg("remote discount delete failed")
		return model.Failed(model.GenericFailure)
	}

	if err := s.discountRepo.Delete(ctx, req.Shop, row.ID); err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", row.DiscountID).Msg("failed to delete discount mirror")
		return model.Failed(model.GenericFailure)
	}

	s.logger.Info().Str("shop", req.Shop).Str("discount_id", row.DiscountID).Msg("discount deleted")
	return model.Succeeded("Discount deleted successfully")
}

// deleteRemote issues the delete mutation matching the row's kind.
func (s *discountService) deleteRemote(ctx context.Context, sess *model.Session, row *model.DiscountCode) (string, error) {
	if row.Kind.IsCustom() {
		return s.gateway.DeleteCode(ctx, sess, row.DiscountID)
	}
	return s.gateway.DeleteAutomatic(ctx, sess, row.DiscountID)
}

// DeleteRedeemCodes removes generated codes under one parent discount.
func (s *discountService) DeleteRedeemCodes(ctx context.Context, req *model.DeleteRedeemCodesRequest) *model.CommandResult {
	if req.Shop == "" {
		return model.Failed(model.ErrMissingShop.Message)
	}
	if req.DiscountID == "" || len(req.Codes) == 0 {
		return model.Failed("Discount id and codes are required")
	}

	sess, err := s.session(ctx, req.Shop)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Msg("failed to resolve access token")
		return model.Failed(model.GenericFailure)
	}

	if err := s.gateway.DeleteRedeemCodes(ctx, sess, req.DiscountID, req.Codes); err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", req.DiscountID).Msg("redeem code bulk delete failed")
		return model.Failed(model.GenericFailure)
	}

	return model.Succeeded(fmt.Sprintf("Deleted %d redeem codes", len(req.Codes)))
}

// DeleteAll removes every discount for a shop. Rows are deleted locally only
// when their remote deletion was confirmed.
func (s *discountService) DeleteAll(ctx context.Context, shop string) *model.DeleteAllResult {
	if shop == "" {
		return &model.DeleteAllResult{Success: false, Message: model.ErrMissingShop.Message}
	}

	rows, err := s.discountRepo.ListByShop(ctx, shop)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("failed to list discounts for delete-all")
		return &model.DeleteAllResult{Success: false, Message: model.GenericFailure}
	}
	if len(rows) == 0 {
		return &model.DeleteAllResult{Success: true, Message: "No discounts to delete"}
	}

	sess, err := s.session(ctx, shop)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("failed to resolve access token")
		return &model.DeleteAllResult{Success: false, Message: model.GenericFailure}
	}

	deleted, failed := 0, 0
	for i := range rows {
		row := &rows[i]
		if _, err := s.deleteRemote(ctx, sess, row); err != nil {
			s.logger.Warn().Err(err).Str("shop", shop).Str("discount_id", row.DiscountID).Msg("remote delete failed during delete-all")
			failed++
			continue
		}
		if err := s.discountRepo.Delete(ctx, shop, row.ID); err != nil {
			s.logger.Error().Err(err).Str("shop", shop).Str("discount_id", row.DiscountID).Msg("local delete failed during delete-all")
			failed++
			continue
		}
		deleted++
	}

	s.logger.Info().
		Str("shop", shop).
		Int("deleted", deleted).
		Int("failed", failed).
		Msg("delete-all completed")

	return &model.DeleteAllResult{
		Success: failed == 0,
		Message: fmt.Sprintf("Deleted %d of %d discounts", deleted, len(rows)),
		Deleted: deleted,
		Failed:  failed,
	}
}

// ImportCodes bulk-imports redeem codes from a gzipped code file.
func (s *discountService) ImportCodes(ctx context.Context, req *model.ImportCodesRequest) *model.CommandResult {
	if req.Shop == "" {
		return model.Failed(model.ErrMissingShop.Message)
	}
	if req.DiscountID == "" || req.File == "" {
		return model.Failed("Discount id and code file are required")
	}

	row, err := s.discountRepo.GetByDiscountID(ctx, req.Shop, req.DiscountID)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", req.DiscountID).Msg("failed to load discount for import")
		return model.Failed(model.GenericFailure)
	}
	if row == nil {
		return model.Failed(model.ErrDiscountNotFound.Message)
	}
	if !row.Kind.IsCustom() {
		return model.Failed("Redeem codes can only be imported into code discounts")
	}

	set, err := s.codeLoader.Load(ctx, req.File)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("file", req.File).Msg("failed to load code file")
		return model.Failed(model.GenericFailure)
	}
	if set.Size() == 0 {
		return model.Failed("Code file contained no valid codes")
	}

	sess, err := s.session(ctx, req.Shop)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Msg("failed to resolve access token")
		return model.Failed(model.GenericFailure)
	}

	if err := s.ensureRedeemCodes(ctx, sess, req.DiscountID, set.ToSlice()); err != nil {
		s.logger.Error().Err(err).Str("shop", req.Shop).Str("discount_id", req.DiscountID).Msg("code import failed")
		return model.Failed(model.GenericFailure)
	}

	if !row.IsMultiple {
		row.IsMultiple = true
		if err := s.discountRepo.Update(ctx, row); err != nil {
			s.logger.Warn().Err(err).Str("shop", req.Shop).Str("discount_id", req.DiscountID).Msg("failed to flag discount as multi-code")
		}
	}

	return model.Succeeded(fmt.Sprintf("Imported %d codes", set.Size()))
}
