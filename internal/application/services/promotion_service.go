package services

import (
	"context"
	"fmt"
	"time"

	"github.com/avatarctic/storefront/internal/core/domain/promotion"
	"github.com/avatarctic/storefront/internal/core/ports"
)

type PromotionService struct {
	now func() time.Time
}

func NewPromotionService() *PromotionService {
	return &PromotionService{now: time.Now}
}

// ListActive returns promotions running right now. The upstream filter is
// re-applied locally so a stale clock upstream never shows an expired offer.
func (s *PromotionService) ListActive(ctx context.Context, api ports.APIClient) ([]*promotion.Promotion, error) {
	all, err := getData[[]*promotion.Promotion](ctx, api, "/promotions?active=true")
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	now := s.now()
	active := make([]*promotion.Promotion, 0, len(all))
	for _, p := range all {
		if p != nil && p.IsActive(now) {
			active = append(active, p)
		}
	}
	return active, nil
}
