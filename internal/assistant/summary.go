package assistant

import (
	"fmt"
	"strings"

	"github.com/stockpilot/internal/models"
)

// maxSummaryProducts 摘要最多覆盖的商品数（控制提示词体积）
const maxSummaryProducts = 50

// BuildContextSummary 生成目录上下文摘要
// 内容包含商品名称、分类及各规格的 SKU/颜色/库存，供协作方对齐实体。
func BuildContextSummary(products []models.Product) string {
	if len(products) == 0 {
		return "目录为空"
	}

	var b strings.Builder
	count := len(products)
	if count > maxSummaryProducts {
		count = maxSummaryProducts
	}
	for i := 0; i < count; i++ {
		product := products[i]
		b.WriteString(fmt.Sprintf("%s（%s）", product.Name, product.Category))
		if len(product.SubProducts) > 0 {
			parts := make([]string, 0, len(product.SubProducts))
			for _, sub := range product.SubProducts {
				parts = append(parts, fmt.Sprintf("%s/%s x%d", sub.SKU, sub.Color, sub.Quantity))
			}
			b.WriteString(": ")
			b.WriteString(strings.Join(parts, ", "))
		}
		b.WriteString("\n")
	}
	if len(products) > maxSummaryProducts {
		b.WriteString(fmt.Sprintf("……其余 %d 个商品省略\n", len(products)-maxSummaryProducts))
	}
	return strings.TrimRight(b.String(), "\n")
}
