package queue

import (
	"encoding/json"

	"github.com/stockpilot/internal/constants"
	"github.com/stockpilot/internal/models"

	"github.com/hibiken/asynq"
)

const (
	// TaskLowStockNotify 低库存预警通知任务
	TaskLowStockNotify = constants.TaskLowStockNotify
)

// LowStockNotifyPayload 低库存通知任务载荷
type LowStockNotifyPayload struct {
	Alerts []models.Alert `json:"alerts"`
}

// NewLowStockNotifyTask 构造低库存通知任务
func NewLowStockNotifyTask(payload LowStockNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockNotify, data), nil
}
