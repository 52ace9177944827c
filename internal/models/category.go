package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 菜单分类
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`                   // 主键
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`       // 唯一标识
	NameJSON  LocalizedText  `gorm:"type:json;not null" json:"name"`         // 多语言名称
	DescJSON  LocalizedText  `gorm:"type:json" json:"description,omitempty"` // 多语言描述
	Icon      string         `gorm:"type:varchar(500)" json:"icon"`          // 分类图标
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`      // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                             // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
