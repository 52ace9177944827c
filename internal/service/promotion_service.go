package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/mesa-next/internal/cache"
	"github.com/mesa-next/internal/logger"
	"github.com/mesa-next/internal/models"
	"github.com/mesa-next/internal/repository"
)

const (
	promotionCacheTTL        = time.Minute
	promotionsCacheKey       = "promo:promotions"
	carouselCardsCacheKey    = "promo:carousel"
	defaultCarouselColor     = "#FF6B35"
	defaultPromotionPageSize = 10
	maxPromotionPageSize     = 50
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// PromotionService 首页促销横幅与滚动卡片
type PromotionService struct {
	repo repository.PromotionRepository
	now  func() time.Time
}

// NewPromotionService 创建促销服务
func NewPromotionService(repo repository.PromotionRepository) *PromotionService {
	return &PromotionService{repo: repo, now: time.Now}
}

// ListActivePromotions 当前有效的横幅
func (s *PromotionService) ListActivePromotions(ctx context.Context, limit int) ([]models.Promotion, error) {
	limit = normalizePromotionLimit(limit)
	var promotions []models.Promotion
	if hit, err := cache.GetJSON(ctx, promotionsCacheKey, &promotions); err != nil {
		logger.Warnw("promotion_cache_read_failed", "key", promotionsCacheKey, "error", err)
	} else if hit {
		return firstN(promotions, limit), nil
	}

	promotions, err := s.repo.ListActivePromotions(s.now(), maxPromotionPageSize)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, promotionsCacheKey, promotions, promotionCacheTTL); err != nil {
		logger.Warnw("promotion_cache_write_failed", "key", promotionsCacheKey, "error", err)
	}
	return firstN(promotions, limit), nil
}

// ListCarouselCards 启用的滚动卡片，非法背景色回退为默认色
func (s *PromotionService) ListCarouselCards(ctx context.Context, limit int) ([]models.CarouselCard, error) {
	limit = normalizePromotionLimit(limit)
	var cards []models.CarouselCard
	if hit, err := cache.GetJSON(ctx, carouselCardsCacheKey, &cards); err != nil {
		logger.Warnw("promotion_cache_read_failed", "key", carouselCardsCacheKey, "error", err)
	} else if hit {
		return firstN(cards, limit), nil
	}

	cards, err := s.repo.ListActiveCarouselCards(maxPromotionPageSize)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		cards[i].BackgroundColor = normalizeHexColor(cards[i].BackgroundColor)
	}
	if err := cache.SetJSON(ctx, carouselCardsCacheKey, cards, promotionCacheTTL); err != nil {
		logger.Warnw("promotion_cache_write_failed", "key", carouselCardsCacheKey, "error", err)
	}
	return firstN(cards, limit), nil
}

// InvalidateCache 清除促销缓存
func (s *PromotionService) InvalidateCache(ctx context.Context) {
	for _, key := range []string{promotionsCacheKey, carouselCardsCacheKey} {
		if err := cache.Del(ctx, key); err != nil {
			logger.Warnw("promotion_cache_invalidate_failed", "key", key, "error", err)
		}
	}
}

func normalizePromotionLimit(limit int) int {
	if limit <= 0 {
		return defaultPromotionPageSize
	}
	if limit > maxPromotionPageSize {
		return maxPromotionPageSize
	}
	return limit
}

func normalizeHexColor(color string) string {
	color = strings.TrimSpace(color)
	if !hexColorPattern.MatchString(color) {
		return defaultCarouselColor
	}
	return strings.ToUpper(color)
}

func firstN[T any](items []T, limit int) []T {
	if items == nil {
		return []T{}
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
