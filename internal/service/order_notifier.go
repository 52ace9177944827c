package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mesa-next/internal/logger"
	"github.com/mesa-next/internal/models"
	"github.com/mesa-next/internal/pricing"
	"github.com/mesa-next/internal/queue"
	"github.com/mesa-next/internal/repository"
)

// OrderNotifier 订单邮件通知（由异步任务调用）
type OrderNotifier struct {
	orders    repository.OrderRepository
	settings  *SettingService
	email     *EmailService
	formatter pricing.Formatter
}

// NewOrderNotifier 创建订单通知器
func NewOrderNotifier(orders repository.OrderRepository, settings *SettingService, email *EmailService, formatter pricing.Formatter) *OrderNotifier {
	return &OrderNotifier{orders: orders, settings: settings, email: email, formatter: formatter}
}

func (n *OrderNotifier) emailInput(order *models.Order, details string) OrderEmailInput {
	return OrderEmailInput{
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		Street:       order.DeliveryStreet,
		HouseNumber:  order.DeliveryHouseNumber,
		Location:     order.DeliveryLocation,
		Total:        n.formatter.Format(order.TotalPrice.Decimal),
		Details:      details,
	}
}

// NotifyOrderPlaced 向顾客发送确认邮件并通知店铺；订单不存在时跳过
func (n *OrderNotifier) NotifyOrderPlaced(ctx context.Context, payload queue.OrderEmailPayload) error {
	order, err := n.orders.GetByID(payload.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Debugw("order_notify_skip_not_found", "order_id", payload.OrderID)
		return nil
	}
	if !n.email.Enabled() {
		logger.Debugw("order_notify_skip_email_disabled", "order_id", order.ID)
		return nil
	}
	locale := payload.Locale
	if strings.TrimSpace(locale) == "" {
		locale = order.Locale
	}
	input := n.emailInput(order, payload.Details)

	if to := strings.TrimSpace(order.CustomerEmail); to != "" {
		if err := n.email.SendOrderConfirmation(to, input, locale); err != nil {
			logger.Warnw("order_notify_customer_failed", "order_id", order.ID, "error", err)
			if !errors.Is(err, ErrEmailRecipientRejected) && !errors.Is(err, ErrInvalidEmail) {
				return err
			}
		}
	}

	company, err := n.settings.GetCompany(ctx)
	if err != nil {
		return err
	}
	if to := strings.TrimSpace(company.Email); to != "" {
		if err := n.email.SendNewOrderNotice(to, input, locale); err != nil {
			logger.Warnw("order_notify_company_failed", "order_id", order.ID, "error", err)
			return err
		}
	}
	return nil
}

// NotifyOrderCancelled 通知店铺订单已取消
func (n *OrderNotifier) NotifyOrderCancelled(ctx context.Context, payload queue.OrderEmailPayload) error {
	order, err := n.orders.GetByID(payload.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Debugw("order_notify_skip_not_found", "order_id", payload.OrderID)
		return nil
	}
	if !n.email.Enabled() {
		logger.Debugw("order_notify_skip_email_disabled", "order_id", order.ID)
		return nil
	}
	company, err := n.settings.GetCompany(ctx)
	if err != nil {
		return err
	}
	to := strings.TrimSpace(company.Email)
	if to == "" {
		logger.Debugw("order_notify_skip_company_email_empty", "order_id", order.ID)
		return nil
	}
	return n.email.SendOrderCancellation(to, n.emailInput(order, ""), order.Locale)
}
