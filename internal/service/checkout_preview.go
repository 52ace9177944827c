package service

import (
	"github.com/mesa-next/internal/cart"
	"github.com/mesa-next/internal/pricing"

	"github.com/shopspring/decimal"
)

// PreviewLine 结账明细行
type PreviewLine struct {
	LineID        string                    `json:"line_id"`
	ProductID     uint                      `json:"product_id"`
	Name          string                    `json:"name"`
	Quantity      int                       `json:"quantity"`
	BasePrice     decimal.Decimal           `json:"base_price"`
	ExtrasListed  decimal.Decimal           `json:"extras_listed"`
	ExtrasCharged decimal.Decimal           `json:"extras_charged"`
	UnitPrice     decimal.Decimal           `json:"unit_price"`
	LineTotal     decimal.Decimal           `json:"line_total"`
	Extras        pricing.ExtrasPriceResult `json:"extras"`
	Line          cart.Line                 `json:"line"`
}

// CheckoutPreview 结账预览
// CartTotal 为购物车直接累加的总价；ChargedTotal 计入去料换加料的免费配料
type CheckoutPreview struct {
	Lines        []PreviewLine   `json:"lines"`
	ItemCount    int             `json:"item_count"`
	CartTotal    decimal.Decimal `json:"cart_total"`
	ChargedTotal decimal.Decimal `json:"charged_total"`
	SwapDiscount decimal.Decimal `json:"swap_discount"`
}

// BuildPreview 根据购物车行计算结账明细
func BuildPreview(lines []cart.Line, locale string) CheckoutPreview {
	preview := CheckoutPreview{
		Lines:        make([]PreviewLine, 0, len(lines)),
		CartTotal:    decimal.Zero,
		ChargedTotal: decimal.Zero,
	}
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		base := line.Product.Price.Decimal()

		var selected []cart.ExtraIngredient
		deselected := 0
		if line.Customization != nil {
			selected = line.Customization.SelectedExtras
			deselected = line.Customization.DeselectedIngredientsCount
		}
		extras := pricing.CalculateExtrasPrice(selected, deselected, line.Product.AllowIngredientSwap)
		listed := pricing.SumExtras(selected)
		unit := base.Add(extras.TotalPrice)
		lineTotal := unit.Mul(qty)

		preview.Lines = append(preview.Lines, PreviewLine{
			LineID:        line.ID,
			ProductID:     line.Product.ID,
			Name:          SnapshotName(line.Product, locale),
			Quantity:      line.Quantity,
			BasePrice:     base,
			ExtrasListed:  listed,
			ExtrasCharged: extras.TotalPrice,
			UnitPrice:     unit,
			LineTotal:     lineTotal,
			Extras:        extras,
			Line:          line,
		})
		preview.ItemCount += line.Quantity
		preview.CartTotal = preview.CartTotal.Add(cart.LineUnitPrice(line).Mul(qty))
		preview.ChargedTotal = preview.ChargedTotal.Add(lineTotal)
	}
	preview.SwapDiscount = preview.CartTotal.Sub(preview.ChargedTotal)
	return preview
}
