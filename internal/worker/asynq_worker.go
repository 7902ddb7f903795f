package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stockpilot/internal/constants"
	"github.com/stockpilot/internal/logger"
	"github.com/stockpilot/internal/provider"
	"github.com/stockpilot/internal/queue"

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
	mux.HandleFunc(queue.TaskLowStockNotify, c.handleLowStockNotify)
}

// handleLowStockNotify 处理低库存预警通知
// 逐条输出结构化日志，并把最近通知时间写入键值存储供前端展示。
func (c *Consumer) handleLowStockNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowStockNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_unmarshal_failed", "error", err)
		return err
	}
	if len(payload.Alerts) == 0 {
		logger.Debugw("worker_low_stock_skip_empty_payload")
		return nil
	}

	for _, alert := range payload.Alerts {
		logger.Infow("low_stock_alert",
			"alert_id", alert.ID,
			"name", alert.Name,
			"sku", alert.SKU,
			"quantity", alert.CurrentQuantity,
			"limit", alert.Limit,
		)
	}

	if c.KVRepo != nil {
		notifiedAt := time.Now().Format(time.RFC3339)
		if _, err := c.KVRepo.Upsert(constants.StorageKeyLastNotified, notifiedAt); err != nil {
			logger.Warnw("worker_low_stock_record_failed", "error", err)
			return err
		}
	}
	return nil
}
