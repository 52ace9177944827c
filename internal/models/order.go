package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单（配送到家，线下付款）
type Order struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	SessionID           string         `gorm:"type:varchar(64);index" json:"-"`
	Status              string         `gorm:"type:varchar(20);index;not null" json:"status"`
	Channel             string         `gorm:"type:varchar(20);not null" json:"channel"`
	Locale              string         `gorm:"type:varchar(8)" json:"locale"`
	CustomerName        string         `gorm:"type:varchar(100);not null" json:"customer_name"`
	CustomerEmail       string         `gorm:"type:varchar(200)" json:"customer_email,omitempty"`
	Phone               string         `gorm:"type:varchar(20);index;not null" json:"phone"`
	DeliveryStreet      string         `gorm:"type:varchar(200);not null" json:"delivery_street"`
	DeliveryHouseNumber string         `gorm:"type:varchar(20);not null" json:"delivery_house_number"`
	DeliveryLocation    string         `gorm:"type:varchar(100);not null" json:"delivery_location"`
	Notes               string         `gorm:"type:varchar(500)" json:"notes,omitempty"`
	CartTotal           Money          `gorm:"type:decimal(10,2);not null;default:0" json:"cart_total"`
	TotalPrice          Money          `gorm:"type:decimal(10,2);not null;default:0" json:"total_price"`
	CancelledAt         *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项；单价为下单时的基础价 + 实收加料价
type OrderItem struct {
	ID                uint          `gorm:"primarykey" json:"id"`
	OrderID           uint          `gorm:"index;not null" json:"order_id"`
	ProductID         uint          `gorm:"index;not null" json:"product_id"`
	ProductName       LocalizedText `gorm:"type:json;not null" json:"product_name"`
	Quantity          int           `gorm:"not null" json:"quantity"`
	UnitPrice         Money         `gorm:"type:decimal(10,2);not null;default:0" json:"unit_price"`
	Subtotal          Money         `gorm:"type:decimal(10,2);not null;default:0" json:"subtotal"`
	CustomizationJSON JSON          `gorm:"type:json" json:"customization,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
