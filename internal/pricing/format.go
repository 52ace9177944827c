package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formatter 金额格式化器
type Formatter struct {
	Symbol string
}

// NewFormatter 创建格式化器，空符号回退为默认货币符号
func NewFormatter(symbol string) Formatter {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return Formatter{Symbol: symbol}
}

// Format 输出 "<符号><两位小数>"
func (f Formatter) Format(amount decimal.Decimal) string {
	symbol := f.Symbol
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return symbol + amount.StringFixed(2)
}

// FormatPrice 使用默认货币符号格式化
func FormatPrice(amount decimal.Decimal) string {
	return Formatter{Symbol: DefaultCurrencySymbol}.Format(amount)
}
