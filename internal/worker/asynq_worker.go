package worker

import (
	"context"

	"github.com/mesa-next/internal/logger"
	"github.com/mesa-next/internal/metrics"
	"github.com/mesa-next/internal/provider"
	"github.com/mesa-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmEmail, c.handleOrderConfirmEmail)
	mux.HandleFunc(queue.TaskOrderCancelEmail, c.handleOrderCancelEmail)
	mux.HandleFunc(queue.TaskCartPurgeExpired, c.handleCartPurgeExpired)
}

func (c *Consumer) handleOrderConfirmEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.OrderNotifier == nil {
		logger.Debugw("worker_order_confirm_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodeOrderEmailPayload(task)
	if err != nil {
		logger.Warnw("worker_order_confirm_email_unmarshal_failed", "error", err)
		return recordTask(queue.TaskOrderConfirmEmail, err)
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_confirm_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderNotifier.NotifyOrderPlaced(ctx, payload); err != nil {
		logger.Warnw("worker_order_confirm_email_failed", "order_id", payload.OrderID, "error", err)
		return recordTask(queue.TaskOrderConfirmEmail, err)
	}
	return recordTask(queue.TaskOrderConfirmEmail, nil)
}

func (c *Consumer) handleOrderCancelEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.OrderNotifier == nil {
		logger.Debugw("worker_order_cancel_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodeOrderEmailPayload(task)
	if err != nil {
		logger.Warnw("worker_order_cancel_email_unmarshal_failed", "error", err)
		return recordTask(queue.TaskOrderCancelEmail, err)
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_cancel_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderNotifier.NotifyOrderCancelled(ctx, payload); err != nil {
		logger.Warnw("worker_order_cancel_email_failed", "order_id", payload.OrderID, "error", err)
		return recordTask(queue.TaskOrderCancelEmail, err)
	}
	return recordTask(queue.TaskOrderCancelEmail, nil)
}

func (c *Consumer) handleCartPurgeExpired(ctx context.Context, _ *asynq.Task) error {
	if c == nil || c.CartStateStore == nil {
		logger.Debugw("worker_cart_purge_skip_nil", "consumer_nil", c == nil)
		return nil
	}
	purged, err := c.CartStateStore.PurgeExpired(ctx)
	if err != nil {
		logger.Warnw("worker_cart_purge_failed", "error", err)
		return recordTask(queue.TaskCartPurgeExpired, err)
	}
	if purged > 0 {
		logger.Infow("worker_cart_purge_done", "purged", purged)
	}
	return recordTask(queue.TaskCartPurgeExpired, nil)
}

func recordTask(name string, err error) error {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.TasksProcessed.WithLabelValues(name, result).Inc()
	return err
}
