package pricing

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Extra 额外配料快照（加入购物车时按值复制）
type Extra struct {
	ID    uint              `json:"id"`
	Name  map[string]string `json:"name"`
	Price Price             `json:"price"`
	Icon  string            `json:"icon"`
}

// ExtrasPriceResult 配料计价结果
type ExtrasPriceResult struct {
	TotalPrice      decimal.Decimal `json:"total_price"`
	FreeExtrasCount int             `json:"free_extras_count"`
	PaidExtrasCount int             `json:"paid_extras_count"`
	FreeExtras      []Extra         `json:"free_extras"`
	PaidExtras      []Extra         `json:"paid_extras"`
}

func emptyExtrasResult() ExtrasPriceResult {
	return ExtrasPriceResult{
		TotalPrice: decimal.Zero,
		FreeExtras: []Extra{},
		PaidExtras: []Extra{},
	}
}

// CalculateExtrasPrice 计算配料实收金额。
// 允许替换且去掉了 N 个原配料时，最贵的 N 个配料免费。
func CalculateExtrasPrice(selectedExtras []Extra, deselectedCount int, allowSwap bool) ExtrasPriceResult {
	if len(selectedExtras) == 0 {
		return emptyExtrasResult()
	}

	if !allowSwap || deselectedCount <= 0 {
		paid := make([]Extra, len(selectedExtras))
		copy(paid, selectedExtras)
		return ExtrasPriceResult{
			TotalPrice:      sumExtras(paid),
			FreeExtrasCount: 0,
			PaidExtrasCount: len(paid),
			FreeExtras:      []Extra{},
			PaidExtras:      paid,
		}
	}

	sorted := make([]Extra, len(selectedExtras))
	copy(sorted, selectedExtras)
	slices.SortStableFunc(sorted, func(a, b Extra) int {
		return b.Price.Decimal().Cmp(a.Price.Decimal())
	})

	freeCount := min(deselectedCount, len(sorted))
	free := sorted[:freeCount:freeCount]
	paid := sorted[freeCount:]
	if len(paid) == 0 {
		paid = []Extra{}
	}

	return ExtrasPriceResult{
		TotalPrice:      sumExtras(paid),
		FreeExtrasCount: freeCount,
		PaidExtrasCount: len(paid),
		FreeExtras:      free,
		PaidExtras:      paid,
	}
}

// SumExtras 配料原价合计（不计替换优惠）
func SumExtras(extras []Extra) decimal.Decimal {
	return sumExtras(extras)
}

func sumExtras(extras []Extra) decimal.Decimal {
	total := decimal.Zero
	for _, extra := range extras {
		total = total.Add(extra.Price.Decimal())
	}
	return total
}
