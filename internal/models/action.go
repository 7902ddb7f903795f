package models

// InventoryAction 结构化库存动作（由外部 AI 协作方产出）
type InventoryAction struct {
	Type           string      `json:"type"`                     // 动作类型（CreateProduct/AddSubProduct/UpdateStock/Unknown）
	Reason         string      `json:"reason"`                   // 可读说明
	ProductName    string      `json:"productName,omitempty"`    // 目标商品名称
	SKU            string      `json:"sku,omitempty"`            // 目标 SKU
	Color          string      `json:"color,omitempty"`          // 目标颜色
	QuantityChange int         `json:"quantityChange,omitempty"` // 库存增减量（正增负减）
	Data           *ActionData `json:"data,omitempty"`           // 附带的商品/规格字段
}

// ActionData 动作附带字段（商品字段与规格字段混合，均可缺省）
type ActionData struct {
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	BasePrice   *Money `json:"basePrice,omitempty"`
	Image       string `json:"image,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
	AlertLimit  *int   `json:"alertLimit,omitempty"`
	SKU         string `json:"sku,omitempty"`
	Color       string `json:"color,omitempty"`
	Price       *Money `json:"price,omitempty"`
	Quantity    *int   `json:"quantity,omitempty"`
	Weight      string `json:"weight,omitempty"`
	Dimensions  string `json:"dimensions,omitempty"`
}

// HasVariantFields 是否携带规格维度字段
func (d *ActionData) HasVariantFields() bool {
	if d == nil {
		return false
	}
	return d.SKU != "" || d.Color != "" || d.Price != nil || d.Quantity != nil
}
