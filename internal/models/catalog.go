package models

import (
	"strings"

	"github.com/google/uuid"
)

// Product 商品（目录顶层条目，JSON 形态即持久化形态）
type Product struct {
	ID          string       `json:"id"`          // 稳定唯一标识
	Name        string       `json:"name"`        // 商品名称
	Category    string       `json:"category"`    // 分类
	Description string       `json:"description"` // 描述
	BasePrice   Money        `json:"basePrice"`   // 基础价格（非负）
	Image       string       `json:"image"`       // 图片地址
	Remarks     string       `json:"remarks"`     // 备注
	AlertLimit  int          `json:"alertLimit"`  // 低库存预警阈值（非负）
	SubProducts []SubProduct `json:"subProducts"` // 规格列表（顺序即展示顺序）
}

// SubProduct 商品规格（独占归属于一个商品）
type SubProduct struct {
	ID          string `json:"id"`          // 稳定唯一标识
	SKU         string `json:"sku"`         // SKU 编码（期望全局唯一，不强制）
	Name        string `json:"name"`        // 规格名称（空表示继承商品名称）
	Description string `json:"description"` // 规格描述（空表示继承商品描述）
	Color       string `json:"color"`       // 颜色
	Price       Money  `json:"price"`       // 规格价格
	Quantity    int    `json:"quantity"`    // 库存数量（不允许持久化为负数）
	Weight      string `json:"weight"`      // 重量
	Dimensions  string `json:"dimensions"`  // 尺寸
	Image       string `json:"image"`       // 图片地址
	Remarks     string `json:"remarks"`     // 备注
}

// DisplayName 规格展示名称（空值回退到商品名称）
func (s SubProduct) DisplayName(parent Product) string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return parent.Name
}

// DisplayDescription 规格展示描述（空值回退到商品描述）
func (s SubProduct) DisplayDescription(parent Product) string {
	if desc := strings.TrimSpace(s.Description); desc != "" {
		return desc
	}
	return parent.Description
}

// NewID 生成新的唯一标识
func NewID() string {
	return uuid.NewString()
}

// CloneProducts 深拷贝目录（规格切片独立）
func CloneProducts(products []Product) []Product {
	if products == nil {
		return nil
	}
	result := make([]Product, len(products))
	copy(result, products)
	for i := range result {
		if result[i].SubProducts == nil {
			continue
		}
		subs := make([]SubProduct, len(result[i].SubProducts))
		copy(subs, result[i].SubProducts)
		result[i].SubProducts = subs
	}
	return result
}
