package public

import (
	handlershared "github.com/mesa-next/internal/http/handlers/shared"
	"github.com/mesa-next/internal/http/response"
	"github.com/mesa-next/internal/i18n"
	"github.com/mesa-next/internal/pricing"
	"github.com/mesa-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 下单请求
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	Phone         string `json:"phone" binding:"required"`
	Street        string `json:"street" binding:"required"`
	HouseNumber   string `json:"house_number" binding:"required"`
	Location      string `json:"location" binding:"required"`
	Notes         string `json:"notes"`
	handlershared.CaptchaPayloadRequest
}

// CancelOrderRequest 取消订单请求
type CancelOrderRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// PreviewCheckout 结账预览
func (h *Handler) PreviewCheckout(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}
	preview, err := h.CheckoutService.Preview(c.Request.Context(), sessionID, i18n.ResolveLocale(c))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, newCartView(preview))
}

// PlaceOrder 提交订单并返回 WhatsApp 链接
func (h *Handler) PlaceOrder(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.delivery_info_invalid", err)
		return
	}
	result, err := h.CheckoutService.PlaceOrder(c.Request.Context(), sessionID, service.CheckoutInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Phone:         req.Phone,
		Street:        req.Street,
		HouseNumber:   req.HouseNumber,
		Location:      req.Location,
		Notes:         req.Notes,
		Locale:        i18n.ResolveLocale(c),
		Captcha:       req.ToServicePayload(),
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, gin.H{
		"order":         result.Order,
		"message":       result.Message,
		"whatsapp_url":  result.WhatsAppURL,
		"cart_total":    pricing.NewPrice(result.Preview.CartTotal),
		"charged_total": pricing.NewPrice(result.Preview.ChargedTotal),
		"swap_discount": pricing.NewPrice(result.Preview.SwapDiscount),
	})
}

// ListOrders 当前会话的订单
func (h *Handler) ListOrders(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	orders, total, err := h.CheckoutService.ListSessionOrders(c.Request.Context(), sessionID, page, pageSize)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 查询订单：下单会话可见，或通过 phone 参数校验
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	sessionID, _ := c.Get(handlershared.CartSessionKey)
	sid, _ := sessionID.(string)
	order, err := h.CheckoutService.GetOrderForCustomer(c.Request.Context(), id, sid, c.Query("phone"))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 顾客取消订单
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.CheckoutService.CancelOrder(c.Request.Context(), id, req.Phone)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}
