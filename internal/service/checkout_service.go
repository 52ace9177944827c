package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/mesa-next/internal/cart"
	"github.com/mesa-next/internal/constants"
	"github.com/mesa-next/internal/i18n"
	"github.com/mesa-next/internal/logger"
	"github.com/mesa-next/internal/metrics"
	"github.com/mesa-next/internal/models"
	"github.com/mesa-next/internal/pricing"
	"github.com/mesa-next/internal/queue"
	"github.com/mesa-next/internal/repository"

	"gorm.io/gorm"
)

// CheckoutInput 下单输入
type CheckoutInput struct {
	CustomerName  string
	CustomerEmail string
	Phone         string
	Street        string
	HouseNumber   string
	Location      string
	Notes         string
	Locale        string
	Captcha       CaptchaVerifyPayload
}

// PlaceOrderResult 下单结果
type PlaceOrderResult struct {
	Order       *models.Order   `json:"order"`
	Preview     CheckoutPreview `json:"preview"`
	Message     string          `json:"message"`
	WhatsAppURL string          `json:"whatsapp_url"`
}

// CheckoutService 结账与订单服务
type CheckoutService struct {
	carts     *CartService
	settings  *SettingService
	orders    repository.OrderRepository
	queue     *queue.Client
	captcha   *CaptchaService
	formatter pricing.Formatter
	now       func() time.Time
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(carts *CartService, settings *SettingService, orders repository.OrderRepository, queueClient *queue.Client, captcha *CaptchaService, formatter pricing.Formatter) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		settings:  settings,
		orders:    orders,
		queue:     queueClient,
		captcha:   captcha,
		formatter: formatter,
		now:       time.Now,
	}
}

// Preview 结账预览
func (s *CheckoutService) Preview(ctx context.Context, sessionID, locale string) (CheckoutPreview, error) {
	lines, err := s.carts.List(ctx, sessionID)
	if err != nil {
		return CheckoutPreview{}, err
	}
	return BuildPreview(lines, i18n.Normalize(locale)), nil
}

// PlaceOrder 校验配送信息、写入订单并生成 WhatsApp 消息，成功后清空购物车
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, input CheckoutInput) (*PlaceOrderResult, error) {
	locale := i18n.Normalize(input.Locale)
	if err := s.captcha.Verify(constants.CaptchaSceneCheckout, input.Captcha); err != nil {
		s.reject("captcha")
		return nil, err
	}
	input = normalizeCheckoutInput(input)
	if err := validateCheckoutInput(input); err != nil {
		s.reject("delivery_info")
		return nil, err
	}

	company, err := s.settings.GetCompany(ctx)
	if err != nil {
		return nil, err
	}
	location, ok := company.ResolveDeliveryLocation(input.Location)
	if !ok {
		s.reject("delivery_location")
		return nil, ErrDeliveryLocationInvalid
	}
	if !company.DeliveryAllowedOn(s.now()) {
		s.reject("delivery_day")
		return nil, ErrDeliveryUnavailable
	}

	var result *PlaceOrderResult
	err = s.carts.WithCart(ctx, sessionID, func(c *cart.Cart) error {
		lines := c.Lines()
		if len(lines) == 0 {
			return ErrCartEmpty
		}
		preview := BuildPreview(lines, locale)
		order := &models.Order{
			SessionID:           sessionID,
			Status:              constants.OrderStatusPending,
			Channel:             constants.OrderChannelWhatsApp,
			Locale:              locale,
			CustomerName:        input.CustomerName,
			CustomerEmail:       input.CustomerEmail,
			Phone:               input.Phone,
			DeliveryStreet:      input.Street,
			DeliveryHouseNumber: input.HouseNumber,
			DeliveryLocation:    location,
			Notes:               input.Notes,
			CartTotal:           models.NewMoneyFromDecimal(preview.CartTotal),
			TotalPrice:          models.NewMoneyFromDecimal(preview.ChargedTotal),
		}
		items, err := buildOrderItems(preview)
		if err != nil {
			return err
		}
		if err := s.orders.Transaction(func(tx *gorm.DB) error {
			return s.orders.WithTx(tx).Create(order, items)
		}); err != nil {
			return err
		}

		message := BuildWhatsAppMessage(order, preview, locale, s.formatter)
		result = &PlaceOrderResult{
			Order:       order,
			Preview:     preview,
			Message:     message,
			WhatsAppURL: BuildWhatsAppURL(company.WhatsAppPhone, message),
		}
		c.ClearCart(ctx)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCartEmpty) {
			s.reject("cart_empty")
		}
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	metrics.OrderRevenue.Add(result.Preview.ChargedTotal.InexactFloat64())
	logger.Infow("checkout_order_placed",
		"order_id", result.Order.ID,
		"session_id", sessionID,
		"items", result.Preview.ItemCount,
		"total", result.Preview.ChargedTotal.StringFixed(2),
	)

	payload := queue.OrderEmailPayload{
		OrderID: result.Order.ID,
		Locale:  locale,
		Details: BuildWhatsAppItems(result.Preview, locale, s.formatter),
	}
	if err := s.queue.EnqueueOrderConfirmEmail(payload); err != nil {
		logger.Warnw("checkout_enqueue_confirm_email_failed", "order_id", result.Order.ID, "error", err)
	}
	return result, nil
}

func (s *CheckoutService) reject(reason string) {
	metrics.CheckoutRejected.WithLabelValues(reason).Inc()
}

func normalizeCheckoutInput(input CheckoutInput) CheckoutInput {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerEmail = strings.TrimSpace(input.CustomerEmail)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Street = strings.TrimSpace(input.Street)
	input.HouseNumber = strings.TrimSpace(input.HouseNumber)
	input.Location = strings.TrimSpace(input.Location)
	input.Notes = strings.TrimSpace(input.Notes)
	return input
}

func validateCheckoutInput(input CheckoutInput) error {
	if input.CustomerName == "" || input.Street == "" || input.HouseNumber == "" {
		return ErrDeliveryInfoInvalid
	}
	if len(phoneDigits(input.Phone)) < 6 {
		return ErrDeliveryInfoInvalid
	}
	if input.CustomerEmail != "" {
		if _, err := mail.ParseAddress(input.CustomerEmail); err != nil {
			return ErrDeliveryInfoInvalid
		}
	}
	if len(input.Notes) > 500 {
		return ErrDeliveryInfoInvalid
	}
	return nil
}

func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func buildOrderItems(preview CheckoutPreview) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(preview.Lines))
	for _, line := range preview.Lines {
		names := make(models.LocalizedText, len(line.Line.Product.Translations))
		for locale, tr := range line.Line.Product.Translations {
			names[locale] = tr.Name
		}
		var custom models.JSON
		if line.Line.Customization != nil {
			raw, err := json.Marshal(line.Line.Customization)
			if err != nil {
				return nil, err
			}
			if err := json.Unmarshal(raw, &custom); err != nil {
				return nil, err
			}
		}
		items = append(items, models.OrderItem{
			ProductID:         line.ProductID,
			ProductName:       names,
			Quantity:          line.Quantity,
			UnitPrice:         models.NewMoneyFromDecimal(line.UnitPrice),
			Subtotal:          models.NewMoneyFromDecimal(line.LineTotal),
			CustomizationJSON: custom,
		})
	}
	return items, nil
}

// GetOrder 获取订单
func (s *CheckoutService) GetOrder(_ context.Context, id uint) (*models.Order, error) {
	if id == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderForCustomer 获取订单，仅下单会话或下单手机号可见
func (s *CheckoutService) GetOrderForCustomer(ctx context.Context, id uint, sessionID, phone string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !orderVisibleTo(order, sessionID, phone) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListSessionOrders 当前会话的订单
func (s *CheckoutService) ListSessionOrders(_ context.Context, sessionID string, page, pageSize int) ([]models.Order, int64, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, 0, ErrSessionInvalid
	}
	return s.orders.List(repository.OrderListFilter{SessionID: sessionID, Page: page, PageSize: pageSize})
}

func orderVisibleTo(order *models.Order, sessionID, phone string) bool {
	if order == nil {
		return false
	}
	if sessionID != "" && order.SessionID == sessionID {
		return true
	}
	digits := phoneDigits(phone)
	return digits != "" && digits == phoneDigits(order.Phone)
}

// CancelOrder 顾客取消订单：手机号需匹配，仅待确认或已确认的订单可取消
func (s *CheckoutService) CancelOrder(ctx context.Context, id uint, phone string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !orderVisibleTo(order, "", phone) {
		return nil, ErrOrderNotFound
	}
	ok, err := s.orders.TransitionStatus(order.ID, []string{constants.OrderStatusPending, constants.OrderStatusConfirmed}, constants.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOrderNotCancellable
	}
	metrics.OrdersCancelled.Inc()
	logger.Infow("checkout_order_cancelled", "order_id", order.ID, "previous_status", order.Status)

	if err := s.queue.EnqueueOrderCancelEmail(queue.OrderEmailPayload{OrderID: order.ID, Locale: order.Locale}); err != nil {
		logger.Warnw("checkout_enqueue_cancel_email_failed", "order_id", order.ID, "error", err)
	}
	return s.GetOrder(ctx, id)
}
