package service

import (
	"context"
	"sync"
	"time"

	"discount-manager/internal/model"
	"discount-manager/internal/shopify"
)

const histogramDays = 7

// List returns a filtered, paged listing with aggregate stats, the trailing
// creation histogram and live usage counts for custom discounts.
func (s *discountService) List(ctx context.Context, q model.ListDiscountsQuery) (*model.ListDiscountsResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}

	now := time.Now().UTC()

	rows, total, err := s.discountRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	stats, err := s.discountRepo.CountByStatus(ctx, q.Shop, now)
	if err != nil {
		return nil, err
	}
	histogram, err := s.discountRepo.CreatedHistogram(ctx, q.Shop, histogramDays, now)
	if err != nil {
		return nil, err
	}

	result := &model.ListDiscountsResult{
		Discounts: make([]model.DiscountRow, len(rows)),
		Stats:     stats,
		Histogram: histogram,
		Page:      q.Page,
		Limit:     q.Limit,
		Total:     total,
	}
	for i := range rows {
		result.Discounts[i] = model.DiscountRow{
			DiscountCode: rows[i],
			Status:       rows[i].Status(now),
			LiveUsage:    rows[i].UsedCount,
		}
	}

	s.attachLiveUsage(ctx, q.Shop, result.Discounts)

	return result, nil
}

// attachLiveUsage overlays the platform's usage counters onto custom rows.
// Lookups run concurrently and all settle; a row whose lookup fails keeps
// the local counter with UsageKnown left false.
func (s *discountService) attachLiveUsage(ctx context.Context, shop string, rows []model.DiscountRow) {
	sess, err := s.session(ctx, shop)
	if err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Msg("live usage lookup skipped")
		return
	}

	var wg sync.WaitGroup
	for i := range rows {
		if !rows[i].Kind.IsCustom() {
			continue
		}
		wg.Add(1)
		go func(row *model.DiscountRow) {
			defer wg.Done()
			count, err := s.gateway.GetUsageCount(ctx, sess, row.DiscountID)
			if err != nil {
				s.logger.Warn().Err(err).Str("shop", shop).Str("discount_id", row.DiscountID).Msg("usage count lookup failed")
				return
			}
			row.LiveUsage = count
			row.UsageKnown = true
		}(&rows[i])
	}
	wg.Wait()
}

// GetByID merges the remote discount configuration with the UI-only fields
// that live solely in the local store.
func (s *discountService) GetByID(ctx context.Context, shop, numericID string, method model.DiscountMethod) (*model.DiscountDetail, error) {
	if shop == "" {
		return nil, model.ErrMissingShop
	}

	kind := model.KindCustomBasic
	if method == model.MethodAutomatic {
		kind = model.KindAutomaticBasic
	}
	remoteID := kind.RemoteID(numericID)

	sess, err := s.session(ctx, shop)
	if err != nil {
		return nil, err
	}

	var remote *shopify.RemoteDiscount
	if kind.IsCustom() {
		remote, err = s.gateway.GetCodeDiscount(ctx, sess, remoteID)
	} else {
		remote, err = s.gateway.GetAutomaticDiscount(ctx, sess, remoteID)
	}
	if err != nil {
		return nil, err
	}
	if remote == nil {
		return nil, model.ErrDiscountNotFound
	}

	detail := &model.DiscountDetail{
		ID:         remote.ID,
		Title:      remote.Title,
		Code:       remote.Code,
		StartsAt:   remote.StartsAt,
		EndsAt:     remote.EndsAt,
		Percentage: remote.Percentage * 100,
		Status:     remote.Status,
		UsageLimit: remote.UsageLimit,
		UsedCount:  remote.UsageCount,
		Method:     method,
	}

	// UI-only fields never leave the local store.
	row, err := s.discountRepo.GetByDiscountID(ctx, shop, remote.ID)
	if err != nil {
		return nil, err
	}
	if row != nil {
		detail.DiscountScope = row.DiscountScope
		detail.IsMultiple = row.IsMultiple
		detail.AdvancedRule = row.AdvancedRule
		if detail.Code == "" {
			detail.Code = row.Code
		}
	}

	return detail, nil
}
