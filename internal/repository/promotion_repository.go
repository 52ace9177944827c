package repository

import (
	"time"

	"github.com/mesa-next/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 促销横幅与滚动卡片数据访问接口
type PromotionRepository interface {
	ListActivePromotions(now time.Time, limit int) ([]models.Promotion, error)
	ListActiveCarouselCards(limit int) ([]models.CarouselCard, error)
	CreatePromotion(promotion *models.Promotion) error
	CreateCarouselCard(card *models.CarouselCard) error
	SetPromotionActive(id uint, active bool) error
	SetCarouselCardActive(id uint, active bool) error
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// ListActivePromotions 启用且处于有效期内的横幅，按排序升序、创建时间倒序
func (r *GormPromotionRepository) ListActivePromotions(now time.Time, limit int) ([]models.Promotion, error) {
	var promotions []models.Promotion
	query := r.db.Model(&models.Promotion{}).
		Where("is_active = ?", true).
		Where("(start_at IS NULL OR start_at <= ?)", now).
		Where("(end_at IS NULL OR end_at >= ?)", now)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Order("sort_order ASC, created_at DESC, id DESC").Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

// ListActiveCarouselCards 启用的滚动卡片
func (r *GormPromotionRepository) ListActiveCarouselCards(limit int) ([]models.CarouselCard, error) {
	var cards []models.CarouselCard
	query := r.db.Model(&models.CarouselCard{}).Where("is_active = ?", true)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Order("sort_order ASC, created_at DESC, id DESC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// CreatePromotion 创建横幅
func (r *GormPromotionRepository) CreatePromotion(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// CreateCarouselCard 创建滚动卡片
func (r *GormPromotionRepository) CreateCarouselCard(card *models.CarouselCard) error {
	return r.db.Create(card).Error
}

// SetPromotionActive 启用或停用横幅（is_active 默认 true，false 需单独更新）
func (r *GormPromotionRepository) SetPromotionActive(id uint, active bool) error {
	return r.db.Model(&models.Promotion{}).Where("id = ?", id).Update("is_active", active).Error
}

// SetCarouselCardActive 启用或停用滚动卡片
func (r *GormPromotionRepository) SetCarouselCardActive(id uint, active bool) error {
	return r.db.Model(&models.CarouselCard{}).Where("id = ?", id).Update("is_active", active).Error
}
