package models

import "time"

// CartState 购物车快照（数据库存储驱动使用）
type CartState struct {
	Key       string    `gorm:"primarykey;type:varchar(191)" json:"key"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// TableName 指定表名
func (CartState) TableName() string {
	return "cart_states"
}
