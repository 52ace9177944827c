package queue

import (
	"encoding/json"

	"github.com/mesa-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmEmail 下单确认邮件任务
	TaskOrderConfirmEmail = constants.TaskOrderConfirmEmail
	// TaskOrderCancelEmail 取消订单通知任务
	TaskOrderCancelEmail = constants.TaskOrderCancelEmail
	// TaskCartPurgeExpired 过期购物车清理任务
	TaskCartPurgeExpired = constants.TaskCartPurgeExpired
)

// OrderEmailPayload 订单邮件任务载荷
type OrderEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Locale  string `json:"locale"`
	Details string `json:"details,omitempty"`
}

// NewOrderConfirmEmailTask 创建下单确认邮件任务
func NewOrderConfirmEmailTask(payload OrderEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmEmail, body), nil
}

// NewOrderCancelEmailTask 创建取消订单通知任务
func NewOrderCancelEmailTask(payload OrderEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderCancelEmail, body), nil
}

// NewCartPurgeTask 创建过期购物车清理任务
func NewCartPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskCartPurgeExpired, nil)
}

// DecodeOrderEmailPayload 解析订单邮件载荷
func DecodeOrderEmailPayload(task *asynq.Task) (OrderEmailPayload, error) {
	var payload OrderEmailPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
