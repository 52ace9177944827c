package pricing

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol 默认货币符号
const DefaultCurrencySymbol = "€"

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Price 价格字段，JSON 中既可以是字符串（"1.50"）也可以是数字（1.5）
type Price string

// NewPrice 从 decimal 创建价格（保留 2 位小数）
func NewPrice(amount decimal.Decimal) Price {
	return Price(amount.StringFixed(2))
}

// UnmarshalJSON 兼容字符串与数字
func (p *Price) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*p = Price(n.String())
	return nil
}

// MarshalJSON 统一输出为字符串
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// Decimal 按容错规则解析为金额
func (p Price) Decimal() decimal.Decimal {
	return ParseAmount(string(p))
}

// ParseAmount 容错解析金额：取最长的合法数字前缀，失败时返回 0
func ParseAmount(value interface{}) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case string:
		return parseNumericPrefix(strings.TrimLeftFunc(v, unicode.IsSpace))
	case Price:
		return parseNumericPrefix(strings.TrimLeftFunc(string(v), unicode.IsSpace))
	case json.Number:
		return parseNumericPrefix(v.String())
	default:
		if d, ok := numberToDecimal(value); ok {
			return d
		}
		return decimal.Zero
	}
}

// ParsePrice 解析展示用价格：数字原样返回，字符串先剔除数字与小数点以外的字符再解析
func ParsePrice(value interface{}) decimal.Decimal {
	switch v := value.(type) {
	case string:
		return parseNumericPrefix(keepDigitsAndDots(v))
	case Price:
		return parseNumericPrefix(keepDigitsAndDots(string(v)))
	default:
		if d, ok := numberToDecimal(value); ok {
			return d
		}
		return decimal.Zero
	}
}

func keepDigitsAndDots(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseNumericPrefix(s string) decimal.Decimal {
	match := numericPrefix.FindString(s)
	if match == "" {
		return decimal.Zero
	}
	mantissa, exponent := match, ""
	if idx := strings.IndexAny(match, "eE"); idx >= 0 {
		mantissa, exponent = match[:idx], match[idx:]
	}
	mantissa = strings.TrimSuffix(mantissa, ".")
	d, err := decimal.NewFromString(mantissa + exponent)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func numberToDecimal(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, true
		}
		return *v, true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, true
		}
		return decimal.NewFromFloat(v), true
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, true
		}
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt32(v), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint:
		return decimal.NewFromInt(int64(v)), true
	case uint32:
		return decimal.NewFromInt(int64(v)), true
	case uint64:
		return decimal.NewFromUint64(v), true
	}
	return decimal.Zero, false
}
