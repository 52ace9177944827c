package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 菜品
type Product struct {
	ID                     uint           `gorm:"primarykey" json:"id"`                                        // 主键
	NameJSON               LocalizedText  `gorm:"type:json;not null" json:"name"`                              // 多语言名称
	DescriptionJSON        LocalizedText  `gorm:"type:json" json:"description"`                                // 多语言描述
	Price                  Money          `gorm:"type:decimal(10,2);not null;default:0" json:"price"`          // 基础价格
	Stock                  int            `gorm:"not null;default:0" json:"stock"`                             // 库存（仅展示）
	Available              bool           `gorm:"default:true;index" json:"available"`                         // 是否可售
	AllowsExtraIngredients bool           `gorm:"default:true" json:"allows_extra_ingredients"`                // 是否允许加料
	AllowIngredientSwap    bool           `gorm:"default:false" json:"allow_ingredient_swap"`                  // 是否允许去料换加料
	Image                  string         `gorm:"type:varchar(500)" json:"image"`                              // 图片
	SortOrder              int            `gorm:"default:0;index" json:"sort_order"`                           // 排序权重
	CreatedAt              time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt              time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	Categories  []Category      `gorm:"many2many:product_categories" json:"categories,omitempty"`
	Ingredients []Ingredient    `gorm:"many2many:product_ingredients" json:"ingredients,omitempty"`
	Options     []ProductOption `gorm:"many2many:product_option_links" json:"options,omitempty"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductOption 菜品选项组（例如“肉类选择”）
type ProductOption struct {
	ID         uint                  `gorm:"primarykey" json:"id"`
	NameJSON   LocalizedText         `gorm:"type:json;not null" json:"name"`
	IsRequired bool                  `gorm:"default:true" json:"is_required"`
	SortOrder  int                   `gorm:"default:0" json:"sort_order"`
	Choices    []ProductOptionChoice `gorm:"foreignKey:OptionID" json:"choices"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// TableName 指定表名
func (ProductOption) TableName() string {
	return "product_options"
}

// ProductOptionChoice 选项组中的可选值
type ProductOptionChoice struct {
	ID              uint          `gorm:"primarykey" json:"id"`
	OptionID        uint          `gorm:"index;not null" json:"option_id"`
	NameJSON        LocalizedText `gorm:"type:json;not null" json:"name"`
	Icon            string        `gorm:"type:varchar(10)" json:"icon"`
	PriceAdjustment Money         `gorm:"type:decimal(10,2);not null;default:0" json:"price_adjustment"`
	SortOrder       int           `gorm:"default:0" json:"sort_order"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TableName 指定表名
func (ProductOptionChoice) TableName() string {
	return "product_option_choices"
}
