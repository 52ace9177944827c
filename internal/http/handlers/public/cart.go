package public

import (
	"github.com/mesa-next/internal/http/response"
	"github.com/mesa-next/internal/i18n"
	"github.com/mesa-next/internal/pricing"
	"github.com/mesa-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID             uint          `json:"product_id" binding:"required"`
	Quantity              *int          `json:"quantity"`
	ExtraIDs              []uint        `json:"extra_ids"`
	Options               map[uint]uint `json:"options"`
	AdditionalNotes       string        `json:"additional_notes" binding:"max=500"`
	DeselectedIngredients []string      `json:"deselected_ingredients"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SwapQuoteRequest 去料换加料报价请求
type SwapQuoteRequest struct {
	ProductID       uint   `json:"product_id" binding:"required"`
	ExtraIDs        []uint `json:"extra_ids"`
	DeselectedCount int    `json:"deselected_count" binding:"min=0"`
}

// CartView 购物车响应
type CartView struct {
	Lines        []service.PreviewLine `json:"lines"`
	ItemCount    int                   `json:"item_count"`
	CartTotal    pricing.Price         `json:"cart_total"`
	ChargedTotal pricing.Price         `json:"charged_total"`
	SwapDiscount pricing.Price         `json:"swap_discount"`
}

func newCartView(preview service.CheckoutPreview) CartView {
	return CartView{
		Lines:        preview.Lines,
		ItemCount:    preview.ItemCount,
		CartTotal:    pricing.NewPrice(preview.CartTotal),
		ChargedTotal: pricing.NewPrice(preview.ChargedTotal),
		SwapDiscount: pricing.NewPrice(preview.SwapDiscount),
	}
}

func (h *Handler) respondCart(c *gin.Context, sessionID string) {
	lines, err := h.CartService.List(c.Request.Context(), sessionID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, newCartView(service.BuildPreview(lines, i18n.ResolveLocale(c))))
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}
	h.respondCart(c, sessionID)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	line, err := h.CartService.AddItem(c.Request.Context(), sessionID, service.AddCartItemInput{
		ProductID:             req.ProductID,
		Quantity:              quantity,
		ExtraIDs:              req.ExtraIDs,
		Options:               req.Options,
		AdditionalNotes:       req.AdditionalNotes,
		DeselectedIngredients: req.DeselectedIngredients,
		Locale:                i18n.ResolveLocale(c),
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"line": line})
}

// UpdateCartItem 设置行数量，小于 1 时删除该行
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.CartService.UpdateQuantity(c.Request.Context(), sessionID, c.Param("id"), *req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCart(c, sessionID)
}

// IncrementCartItem 数量加一
func (h *Handler) IncrementCartItem(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}
	if err := h.CartService.Increment(c.Request.Context(), sessionID, c.Param("id")); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCart(c, sessionID)
}

// DecrementCartItem 数量减一
func (h *Handler) DecrementCartItem(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}
	if err := h.CartService.Decrement(c.Request.Context(), sessionID, c.Param("id")); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCart(c, sessionID)
}

// RemoveCartItem 删除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(c.Request.Context(), sessionID, c.Param("id")); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCart(c, sessionID)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(c.Request.Context(), sessionID); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

// GetCartSummary 购物车摘要（角标用）
func (h *Handler) GetCartSummary(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}
	summary, err := h.CartService.Summary(c.Request.Context(), sessionID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{
		"line_count":  summary.LineCount,
		"item_count":  summary.ItemCount,
		"total_price": pricing.NewPrice(summary.TotalPrice),
		"quantities":  summary.Quantities,
	})
}

// SwapQuote 计算去料换加料后的加料价格
func (h *Handler) SwapQuote(c *gin.Context) {
	var req SwapQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	quote, err := h.CartService.SwapQuote(c.Request.Context(), service.SwapQuoteInput{
		ProductID:       req.ProductID,
		ExtraIDs:        req.ExtraIDs,
		DeselectedCount: req.DeselectedCount,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{
		"total_price":       pricing.NewPrice(quote.TotalPrice),
		"free_extras_count": quote.FreeExtrasCount,
		"paid_extras_count": quote.PaidExtrasCount,
		"free_extras":       quote.FreeExtras,
		"paid_extras":       quote.PaidExtras,
	})
}
