package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/mesa-next/internal/cache"
	"github.com/mesa-next/internal/constants"
	handlershared "github.com/mesa-next/internal/http/handlers/shared"
	"github.com/mesa-next/internal/http/response"
	"github.com/mesa-next/internal/i18n"
	"github.com/mesa-next/internal/models"
	"github.com/mesa-next/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
	publicLowStockLimit  = 5
)

// 库存展示状态（仅展示，是否可下单由 available 决定）
const (
	stockStatusInStock  = "in_stock"
	stockStatusLowStock = "low_stock"
	stockStatusSoldOut  = "sold_out"
)

// PublicProductView 公共菜品响应结构
type PublicProductView struct {
	models.Product
	DisplayName string `json:"display_name"`
	StockStatus string `json:"stock_status"`
	InCart      int    `json:"in_cart"`
}

// PublicCompanyView 公开的店铺信息
type PublicCompanyView struct {
	Name                string                     `json:"name"`
	WhatsAppPhone       string                     `json:"whatsapp_phone"`
	BusinessHours       string                     `json:"business_hours"`
	DeliveryLocations   []service.DeliveryLocation `json:"delivery_locations"`
	DeliveryEnabledDays map[string]bool            `json:"delivery_enabled_days"`
}

// GetConfig 获取前台配置
func (h *Handler) GetConfig(c *gin.Context) {
	ctx := c.Request.Context()
	company, err := h.SettingService.GetCompany(ctx)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	var data map[string]interface{}
	if hit, err := cache.GetJSON(ctx, publicConfigCacheKey, &data); err != nil || !hit {
		data = map[string]interface{}{
			"languages":       constants.SupportedLocales,
			"currency_symbol": h.Formatter.Symbol,
			"company": PublicCompanyView{
				Name:                company.Name,
				WhatsAppPhone:       company.WhatsAppPhone,
				BusinessHours:       company.BusinessHours,
				DeliveryLocations:   company.EnabledLocations(),
				DeliveryEnabledDays: company.DeliveryEnabledDays,
			},
		}
		if h.CaptchaService != nil {
			data["captcha"] = h.CaptchaService.PublicSetting()
		}
		_ = cache.SetJSON(ctx, publicConfigCacheKey, data, publicConfigCacheTTL)
	}
	data["delivery_today"] = company.DeliveryAllowedOn(time.Now())
	response.Success(c, data)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.MenuService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, categories)
}

// GetProducts 获取可售菜品，可按分类筛选或按关键字 q 搜索
func (h *Handler) GetProducts(c *gin.Context) {
	var categoryID uint
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		categoryID = uint(parsed)
	}

	var (
		products []models.Product
		err      error
	)
	if keyword := strings.TrimSpace(c.Query("q")); keyword != "" {
		products, err = h.MenuService.SearchProducts(c.Request.Context(), keyword, categoryID)
	} else {
		products, err = h.MenuService.ListProducts(c.Request.Context(), categoryID)
	}
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	quantities := h.sessionQuantities(c)
	locale := i18n.ResolveLocale(c)
	items := make([]PublicProductView, 0, len(products))
	for i := range products {
		items = append(items, decoratePublicProduct(&products[i], locale, quantities))
	}
	response.Success(c, items)
}

// GetProduct 获取菜品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.MenuService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, decoratePublicProduct(product, i18n.ResolveLocale(c), h.sessionQuantities(c)))
}

// GetExtras 获取可选加料
func (h *Handler) GetExtras(c *gin.Context) {
	extras, err := h.MenuService.ListExtras(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, extras)
}

// sessionQuantities 当前会话中每个菜品的数量，会话缺失时为空
func (h *Handler) sessionQuantities(c *gin.Context) map[uint]int {
	value, ok := c.Get(handlershared.CartSessionKey)
	if !ok {
		return nil
	}
	sessionID, _ := value.(string)
	if sessionID == "" {
		return nil
	}
	summary, err := h.CartService.Summary(c.Request.Context(), sessionID)
	if err != nil {
		requestLog(c).Warnw("public_cart_summary_failed", "error", err)
		return nil
	}
	return summary.Quantities
}

func decoratePublicProduct(product *models.Product, locale string, quantities map[uint]int) PublicProductView {
	item := PublicProductView{
		Product:     *product,
		DisplayName: i18n.Pick(product.NameJSON, locale),
		StockStatus: stockStatusInStock,
		InCart:      quantities[product.ID],
	}
	switch {
	case !product.Available:
		item.StockStatus = stockStatusSoldOut
	case product.Stock > 0 && product.Stock <= publicLowStockLimit:
		item.StockStatus = stockStatusLowStock
	}
	return item
}
