package models

import "time"

// Ingredient 配料；IsExtra 为 true 时可作为收费加料
type Ingredient struct {
	ID        uint          `gorm:"primarykey" json:"id"`
	NameJSON  LocalizedText `gorm:"type:json;not null" json:"name"`
	Icon      string        `gorm:"type:varchar(50)" json:"icon"`
	IsExtra   bool          `gorm:"default:false;index" json:"is_extra"`
	Price     Money         `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// TableName 指定表名
func (Ingredient) TableName() string {
	return "ingredients"
}
