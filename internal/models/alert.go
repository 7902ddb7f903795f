package models

import "time"

// Alert 低库存预警（派生数据，不持久化）
type Alert struct {
	ID              string    `json:"id"`               // 组合标识（商品ID-规格ID）
	Name            string    `json:"name"`             // 展示名称（规格名称，空则商品名称）
	SKU             string    `json:"sku"`              // SKU 编码
	CurrentQuantity int       `json:"current_quantity"` // 当前库存
	Limit           int       `json:"limit"`            // 预警阈值
	Timestamp       time.Time `json:"timestamp"`        // 本次重算时间
}
