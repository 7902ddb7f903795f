package service

import (
	"fmt"
	"time"

	"github.com/stockpilot/internal/models"
)

// DeriveAlerts 从目录重算低库存预警
// 纯函数：遍历顺序固定（目录顺序、规格顺序），每次全量重建，
// 保证库存修正后不会残留过期预警。
func DeriveAlerts(products []models.Product, now time.Time) []models.Alert {
	alerts := make([]models.Alert, 0)
	for _, product := range products {
		for _, sub := range product.SubProducts {
			if sub.Quantity > product.AlertLimit {
				continue
			}
			alerts = append(alerts, models.Alert{
				ID:              fmt.Sprintf("%s-%s", product.ID, sub.ID),
				Name:            sub.DisplayName(product),
				SKU:             sub.SKU,
				CurrentQuantity: sub.Quantity,
				Limit:           product.AlertLimit,
				Timestamp:       now,
			})
		}
	}
	return alerts
}
