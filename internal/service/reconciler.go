package service

import (
	"fmt"
	"strings"

	"github.com/stockpilot/internal/constants"
	"github.com/stockpilot/internal/models"
)

// ActionOutcome 动作执行结果（成功与否都必须产出用户可见消息）
type ActionOutcome struct {
	Applied bool   `json:"applied"` // 是否产生了目录变更
	Message string `json:"message"` // 用户可见消息
}

// ApplyAction 将一条结构化库存动作应用到目录
// 输入目录不被修改，返回新目录与执行结果。
// 商品名称匹配策略统一为大小写不敏感的精确匹配。
func ApplyAction(products []models.Product, action models.InventoryAction) ([]models.Product, ActionOutcome) {
	switch action.Type {
	case constants.ActionCreateProduct:
		return applyCreateProduct(products, action)
	case constants.ActionAddSubProduct:
		return applyAddSubProduct(products, action)
	case constants.ActionUpdateStock:
		return applyUpdateStock(products, action)
	case constants.ActionUnknown:
		reason := strings.TrimSpace(action.Reason)
		if reason == "" {
			reason = "未能识别该指令"
		}
		return products, ActionOutcome{Applied: false, Message: reason}
	default:
		return products, ActionOutcome{Applied: false, Message: fmt.Sprintf("不支持的动作类型: %s", action.Type)}
	}
}

func applyCreateProduct(products []models.Product, action models.InventoryAction) ([]models.Product, ActionOutcome) {
	name := strings.TrimSpace(action.ProductName)
	if name == "" && action.Data != nil {
		name = strings.TrimSpace(action.Data.Name)
	}
	if name == "" {
		return products, ActionOutcome{Applied: false, Message: "创建商品失败：缺少商品名称"}
	}

	result := models.CloneProducts(products)
	for i := range result {
		if !nameEqualFold(result[i].Name, name) {
			continue
		}
		// 已存在：视为补充，规格字段作为新规格追加，不覆盖商品字段
		if !hasVariantFields(action) {
			return result, ActionOutcome{Applied: false, Message: fmt.Sprintf("商品 %s 已存在，未做修改", result[i].Name)}
		}
		sub := buildSubProduct(result[i], action)
		result[i].SubProducts = append(result[i].SubProducts, sub)
		return result, ActionOutcome{Applied: true, Message: fmt.Sprintf("已为商品 %s 追加规格 %s", result[i].Name, sub.SKU)}
	}

	product := models.Product{
		ID:          models.NewID(),
		Name:        name,
		Category:    constants.DefaultCategory,
		Image:       constants.DefaultProductImage,
		AlertLimit:  constants.DefaultAlertLimit,
		SubProducts: []models.SubProduct{},
	}
	if data := action.Data; data != nil {
		if v := strings.TrimSpace(data.Category); v != "" {
			product.Category = v
		}
		if v := strings.TrimSpace(data.Description); v != "" {
			product.Description = v
		}
		if v := strings.TrimSpace(data.Image); v != "" {
			product.Image = v
		}
		if v := strings.TrimSpace(data.Remarks); v != "" {
			product.Remarks = v
		}
		if data.BasePrice != nil && !data.BasePrice.IsNegative() {
			product.BasePrice = *data.BasePrice
		}
		if data.AlertLimit != nil && *data.AlertLimit >= 0 {
			product.AlertLimit = *data.AlertLimit
		}
	}
	if hasVariantFields(action) {
		product.SubProducts = append(product.SubProducts, buildSubProduct(product, action))
	}
	result = append(result, product)
	return result, ActionOutcome{Applied: true, Message: fmt.Sprintf("已创建商品 %s", product.Name)}
}

func applyAddSubProduct(products []models.Product, action models.InventoryAction) ([]models.Product, ActionOutcome) {
	name := strings.TrimSpace(action.ProductName)
	if name == "" && action.Data != nil {
		name = strings.TrimSpace(action.Data.Name)
	}
	if name == "" {
		return products, ActionOutcome{Applied: false, Message: "添加规格失败：缺少目标商品名称"}
	}

	result := models.CloneProducts(products)
	for i := range result {
		if !nameEqualFold(result[i].Name, name) {
			continue
		}
		sub := buildSubProduct(result[i], action)
		result[i].SubProducts = append(result[i].SubProducts, sub)
		return result, ActionOutcome{Applied: true, Message: fmt.Sprintf("已为商品 %s 添加规格 %s", result[i].Name, sub.SKU)}
	}
	return products, ActionOutcome{Applied: false, Message: fmt.Sprintf("未找到名为 %s 的商品", name)}
}

// applyUpdateStock 库存增减
// 匹配优先级（对全目录逐规格判定，先命中的规则生效）：
//
//	a. SKU 大小写不敏感精确匹配；
//	b. 商品名称匹配 + 颜色包含匹配；
//	c. 仅商品名称匹配，且该商品只有一个规格、动作未携带 SKU 和颜色。
//
// 命中规则下的所有规格都会更新（扇出更新），结果库存最低钳制为零。
func applyUpdateStock(products []models.Product, action models.InventoryAction) ([]models.Product, ActionOutcome) {
	if action.QuantityChange == 0 {
		return products, ActionOutcome{Applied: false, Message: "库存调整失败：增减量不能为零"}
	}

	sku := strings.TrimSpace(action.SKU)
	color := strings.TrimSpace(action.Color)
	name := strings.TrimSpace(action.ProductName)

	type target struct {
		productIdx int
		subIdx     int
	}
	matchRule := func(match func(p models.Product, s models.SubProduct) bool) []target {
		var hits []target
		for i := range products {
			for j := range products[i].SubProducts {
				if match(products[i], products[i].SubProducts[j]) {
					hits = append(hits, target{productIdx: i, subIdx: j})
				}
			}
		}
		return hits
	}

	var hits []target
	if sku != "" {
		hits = matchRule(func(_ models.Product, s models.SubProduct) bool {
			return strings.EqualFold(strings.TrimSpace(s.SKU), sku)
		})
	}
	if len(hits) == 0 && name != "" && color != "" {
		hits = matchRule(func(p models.Product, s models.SubProduct) bool {
			return nameEqualFold(p.Name, name) && containsFold(s.Color, color)
		})
	}
	if len(hits) == 0 && name != "" && sku == "" && color == "" {
		hits = matchRule(func(p models.Product, s models.SubProduct) bool {
			return nameEqualFold(p.Name, name) && len(p.SubProducts) == 1
		})
	}
	if len(hits) == 0 {
		return products, ActionOutcome{Applied: false, Message: "库存调整失败：没有匹配的规格"}
	}

	result := models.CloneProducts(products)
	for _, hit := range hits {
		sub := &result[hit.productIdx].SubProducts[hit.subIdx]
		next := sub.Quantity + action.QuantityChange
		if next < 0 {
			next = 0
		}
		sub.Quantity = next
	}
	verb := "增加"
	amount := action.QuantityChange
	if amount < 0 {
		verb = "减少"
		amount = -amount
	}
	return result, ActionOutcome{Applied: true, Message: fmt.Sprintf("已%s %d 件库存，更新 %d 个规格", verb, amount, len(hits))}
}

// hasVariantFields 动作是否携带规格维度字段
// 顶层 SKU/颜色与 Data 中的规格字段同样会被 buildSubProduct 采用，判定口径保持一致。
func hasVariantFields(action models.InventoryAction) bool {
	if strings.TrimSpace(action.SKU) != "" || strings.TrimSpace(action.Color) != "" {
		return true
	}
	return action.Data.HasVariantFields()
}

// buildSubProduct 依据动作字段构造新规格（缺省值回退到商品维度）
func buildSubProduct(parent models.Product, action models.InventoryAction) models.SubProduct {
	sub := models.SubProduct{
		ID:       models.NewID(),
		SKU:      strings.TrimSpace(action.SKU),
		Color:    strings.TrimSpace(action.Color),
		Price:    parent.BasePrice,
		Quantity: 0,
	}
	if data := action.Data; data != nil {
		if v := strings.TrimSpace(data.SKU); v != "" {
			sub.SKU = v
		}
		if v := strings.TrimSpace(data.Color); v != "" {
			sub.Color = v
		}
		if data.Price != nil && !data.Price.IsNegative() {
			sub.Price = *data.Price
		}
		if data.Quantity != nil && *data.Quantity > 0 {
			sub.Quantity = *data.Quantity
		}
		sub.Weight = strings.TrimSpace(data.Weight)
		sub.Dimensions = strings.TrimSpace(data.Dimensions)
		sub.Remarks = strings.TrimSpace(data.Remarks)
	}
	if sub.SKU == "" {
		sub.SKU = generatePlaceholderSKU()
	}
	if sub.Color == "" {
		sub.Color = constants.DefaultColor
	}
	return sub
}

func generatePlaceholderSKU() string {
	id := models.NewID()
	if len(id) > 8 {
		id = id[:8]
	}
	return "SKU-" + strings.ToUpper(id)
}

func nameEqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(haystack)), strings.ToLower(strings.TrimSpace(needle)))
}
