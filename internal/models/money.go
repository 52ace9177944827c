package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/mesa-next/internal/pricing"

	"github.com/shopspring/decimal"
)

// Money 金额列（保留 2 位小数）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// NewMoneyFromString 容错解析金额，无法解析时为 0
func NewMoneyFromString(raw string) Money {
	return NewMoneyFromDecimal(pricing.ParseAmount(raw))
}

// Price 转为价格快照
func (m Money) Price() pricing.Price {
	return pricing.NewPrice(m.Decimal)
}

// MarshalJSON 统一输出 2 位小数的字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON 接受字符串或数字
func (m *Money) UnmarshalJSON(b []byte) error {
	var p pricing.Price
	if err := p.UnmarshalJSON(b); err != nil {
		return err
	}
	m.Decimal = p.Decimal().Round(2)
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
