package repository

import (
	"github.com/mesa-next/internal/models"

	"gorm.io/gorm"
)

// IngredientRepository 配料数据访问接口
type IngredientRepository interface {
	ListExtras() ([]models.Ingredient, error)
	ListByIDs(ids []uint) ([]models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
}

// GormIngredientRepository GORM 实现
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository 创建配料仓库
func NewIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// ListExtras 可作为加料的配料
func (r *GormIngredientRepository) ListExtras() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.Where("is_extra = ?", true).Order("id ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// ListByIDs 按 ID 批量获取，结果保持 ids 的顺序，不存在的 ID 被跳过
func (r *GormIngredientRepository) ListByIDs(ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	var rows []models.Ingredient
	if err := r.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Ingredient, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	ordered := make([]models.Ingredient, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

// Create 创建配料
func (r *GormIngredientRepository) Create(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}
