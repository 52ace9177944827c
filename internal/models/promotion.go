package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion 首页促销横幅（图片 + 底部文案）
type Promotion struct {
	ID              uint           `gorm:"primarykey" json:"id"`                    // 主键
	Title           string         `gorm:"type:varchar(200);not null" json:"title"` // 后台名称
	DescriptionJSON LocalizedText  `gorm:"type:json" json:"description"`            // 多语言底部文案
	Image           string         `gorm:"type:varchar(500);not null" json:"image"` // 横幅图片
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`     // 是否启用
	StartAt         *time.Time     `gorm:"index" json:"start_at"`                   // 生效时间
	EndAt           *time.Time     `gorm:"index" json:"end_at"`                     // 失效时间
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`       // 排序，小的在前
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

// CarouselCard 首页滚动卡片
type CarouselCard struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                      // 主键
	TextJSON        LocalizedText  `gorm:"type:json;not null" json:"text"`                            // 多语言文案
	Emoji           string         `gorm:"type:varchar(16)" json:"emoji"`                             // 图标
	BackgroundColor string         `gorm:"type:varchar(7);default:'#FF6B35'" json:"background_color"` // 背景色 #RRGGBB
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`                       // 是否启用
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                         // 排序，小的在前
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除
}

// TableName 指定表名
func (CarouselCard) TableName() string {
	return "carousel_cards"
}
