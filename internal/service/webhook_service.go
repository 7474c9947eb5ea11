package service

import (
	"context"
	"time"

	"discount-manager/internal/model"
	"discount-manager/internal/repository"
	"discount-manager/internal/shopify"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// webhookService implements WebhookService. Deliveries are assumed
// at-least-once, so every handler converges on the same state when replayed.
type webhookService struct {
	discountRepo repository.DiscountRepository
	sessionRepo  repository.SessionRepository
	eventRepo    repository.WebhookEventRepository
	gateway      shopify.Gateway
	logger       zerolog.Logger
}

// NewWebhookService creates a new webhook reconciler.
func NewWebhookService(
	discountRepo repository.DiscountRepository,
	sessionRepo repository.SessionRepository,
	eventRepo repository.WebhookEventRepository,
	gateway shopify.Gateway,
	logger zerolog.Logger,
) WebhookService {
	return &webhookService{
		discountRepo: discountRepo,
		sessionRepo:  sessionRepo,
		eventRepo:    eventRepo,
		gateway:      gateway,
		logger:       logger.With().Str("service", "webhook").Logger(),
	}
}

func (s *webhookService) session(ctx context.Context, shop string) (*model.Session, error) {
	sess, err := s.sessionRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, model.ErrAccessTokenNotFound
	}
	return sess, nil
}

// fetchRemote loads the remote discount matching the kind's variant.
func (s *webhookService) fetchRemote(ctx context.Context, sess *model.Session, kind model.DiscountKind, remoteID string) (*shopify.RemoteDiscount, error) {
	if kind.IsCustom() {
		return s.gateway.GetCodeDiscount(ctx, sess, remoteID)
	}
	return s.gateway.GetAutomaticDiscount(ctx, sess, remoteID)
}

// DiscountCreated mirrors a discount created outside this app. Discounts
// created through the command handlers are already mirrored; the upsert makes
// the echo a no-op overwrite.
func (s *webhookService) DiscountCreated(ctx context.Context, shop string, payload *model.DiscountWebhookPayload) error {
	remoteID := payload.AdminGraphqlAPIID
	if remoteID == "" {
		s.logger.Warn().Str("shop", shop).Msg("discount create webhook without remote id")
		return nil
	}

	// The payload does not distinguish basic from Bxgy; an existing row
	// knows its own kind, an unknown discount is mirrored as basic.
	kind, err := model.KindFromRemoteID(remoteID, false)
	if err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Str("remote_id", remoteID).Msg("unrecognised discount id in create webhook")
		return nil
	}
	if row, err := s.discountRepo.GetByDiscountID(ctx, shop, remoteID); err != nil {
		return err
	} else if row != nil {
		kind = row.Kind
	}

	sess, err := s.session(ctx, shop)
	if err != nil {
		return err
	}

	remote, err := s.fetchRemote(ctx, sess, kind, remoteID)
	if err != nil {
		return err
	}
	if remote == nil {
		s.logger.Warn().Str("shop", shop).Str("remote_id", remoteID).Msg("discount from create webhook no longer exists")
		return nil
	}

	now := time.Now().UTC()
	scope := model.ScopeProduct
	if kind == model.KindCustomBxgy || kind == model.KindAutomaticBxgy {
		scope = model.ScopeBuyXGetY
	}
	method := model.MethodAutomatic
	if kind.IsCustom() {
		method = model.MethodCustom
	}
	row := &model.DiscountCode{
		ID:             uuid.New(),
		Shop:           shop,
		Code:           remote.Code,
		Title:          remote.Title,
		DiscountID:     remoteID,
		Kind:           kind,
		StartsAt:       remote.StartsAt,
		EndsAt:         remote.EndsAt,
		DiscountAmount: remote.Percentage * 100,
		DiscountType:   model.TypePercent,
		DiscountMethod: method,
		DiscountScope:  scope,
		UsageLimit:     remote.UsageLimit,
		UsedCount:      remote.UsageCount,
		IsActive:       remote.Status == "ACTIVE",
		IsMultiple:     len(remote.Codes) > 1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.discountRepo.UpsertByDiscountID(ctx, row); err != nil {
		return err
	}

	s.logger.Info().Str("shop", shop).Str("discount_id", remoteID).Msg("discount mirrored from create webhook")
	return nil
}

// DiscountUpdated refreshes the mirror of a known discount from remote
// truth. Discounts this app never mirrored are ignored.
func (s *webhookService) DiscountUpdated(ctx context.Context, shop string, payload *model.DiscountWebhookPayload) error {
	remoteID := payload.AdminGraphqlAPIID
	if remoteID == "" {
		return nil
	}

	row, err := s.discountRepo.GetByDiscountID(ctx, shop, remoteID)
	if err != nil {
		return err
	}
	if row == nil {
		s.logger.Debug().Str("shop", shop).Str("remote_id", remoteID).Msg("update webhook for unmirrored discount ignored")
		return nil
	}

	sess, err := s.session(ctx, shop)
	if err != nil {
		return err
	}

	remote, err := s.fetchRemote(ctx, sess, row.Kind, remoteID)
	if err != nil {
		return err
	}
	if remote == nil {
		s.logger.Warn().Str("shop", shop).Str("remote_id", remoteID).Msg("discount from update webhook no longer exists")
		return nil
	}

	row.Title = remote.Title
	if remote.Code != "" {
		row.Code = remote.Code
	}
	row.StartsAt = remote.StartsAt
	row.EndsAt = remote.EndsAt
	if row.DiscountType == model.TypePercent && remote.Percentage > 0 {
		row.DiscountAmount = remote.Percentage * 100
	}
	row.UsageLimit = remote.UsageLimit
	row.UsedCount = remote.UsageCount
	row.IsActive = remote.Status == "ACTIVE"
	if len(remote.Codes) > 1 {
		row.IsMultiple = true
	}
	if err := s.discountRepo.Update(ctx, row); err != nil {
		return err
	}

	s.logger.Info().Str("shop", shop).Str("discount_id", remoteID).Msg("discount mirror refreshed from update webhook")
	return nil
}

// DiscountDeleted removes the mirror of a discount deleted on the platform.
// The row is only removed once the platform confirms the discount is gone,
// so an out-of-order delete cannot drop a live discount.
func (s *webhookService) DiscountDeleted(ctx context.Context, shop string, payload *model.DiscountWebhookPayload) error {
	remoteID := payload.AdminGraphqlAPIID
	if remoteID == "" {
		return nil
	}

	row, err := s.discountRepo.GetByDiscountID(ctx, shop, remoteID)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}

	sess, err := s.session(ctx, shop)
	if err != nil {
		return err
	}

	remote, err := s.fetchRemote(ctx, sess, row.Kind, remoteID)
	if err != nil {
		return err
	}
	if remote != nil {
		s.logger.Warn().Str("shop", shop).Str("remote_id", remoteID).Msg("delete webhook for discount that still exists, keeping mirror")
		return nil
	}

	if err := s.discountRepo.DeleteByDiscountID(ctx, shop, remoteID); err != nil {
		return err
	}

	s.logger.Info().Str("shop", shop).Str("discount_id", remoteID).Msg("discount mirror removed from delete webhook")
	return nil
}

// OrderCreated counts discount usage from an inbound order. The order id is
// claimed first so a redelivered webhook cannot double-count.
func (s *webhookService) OrderCreated(ctx context.Context, shop string, payload *model.OrderWebhookPayload) error {
	if len(payload.DiscountCodes) == 0 {
		return nil
	}

	first, err := s.eventRepo.MarkOrderProcessed(ctx, shop, payload.ID)
	if err != nil {
		return err
	}
	if !first {
		s.logger.Debug().Str("shop", shop).Int64("order_id", payload.ID).Msg("order webhook redelivery ignored")
		return nil
	}

	for _, dc := range payload.DiscountCodes {
		matched, err := s.discountRepo.IncrementUsedCount(ctx, shop, dc.Code)
		if err != nil {
			return err
		}
		if !matched {
			s.logger.Debug().Str("shop", shop).Str("code", dc.Code).Msg("order used a code this app does not track")
			continue
		}
		s.logger.Info().
			Str("shop", shop).
			Str("code", dc.Code).
			Int64("order_id", payload.ID).
			Msg("discount usage counted")
	}
	return nil
}

// CustomerCreated is received only so the subscription stays registered;
// nothing is stored.
func (s *webhookService) CustomerCreated(ctx context.Context, shop string, payload *model.CustomerWebhookPayload) error {
	s.logger.Debug().Str("shop", shop).Int64("customer_id", payload.ID).Msg("customer created")
	return nil
}
