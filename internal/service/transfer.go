package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stockpilot/internal/constants"
	"github.com/stockpilot/internal/models"

	"github.com/shopspring/decimal"
)

// csvExportHeader CSV 导出表头（每个规格一行）
var csvExportHeader = []string{"Product", "Category", "SKU", "Color", "Price", "Quantity", "Weight", "Dimensions", "Remarks"}

// BuildJSONBackup 生成 JSON 备份内容与文件名
func BuildJSONBackup(products []models.Product, now time.Time) ([]byte, string, error) {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("inventory_backup_%s.json", now.Format("20060102_150405"))
	return data, filename, nil
}

// BuildCSVExport 将目录摊平为 CSV（RFC 4180 转义）
// 无规格的商品输出一行规格字段留空的占位行，保证每个商品都可见。
func BuildCSVExport(products []models.Product, now time.Time) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvExportHeader); err != nil {
		return nil, "", err
	}
	for _, product := range products {
		if len(product.SubProducts) == 0 {
			row := []string{product.Name, product.Category, "", "", "", "", "", "", product.Remarks}
			if err := writer.Write(row); err != nil {
				return nil, "", err
			}
			continue
		}
		for _, sub := range product.SubProducts {
			row := []string{
				product.Name,
				product.Category,
				sub.SKU,
				sub.Color,
				sub.Price.String(),
				strconv.Itoa(sub.Quantity),
				sub.Weight,
				sub.Dimensions,
				sub.Remarks,
			}
			if err := writer.Write(row); err != nil {
				return nil, "", err
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("inventory_export_%s.csv", now.Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// importEnvelope 导入信封形态（{"products": [...]}）
type importEnvelope struct {
	Products json.RawMessage `json:"products"`
}

// ParseCatalogImport 解析上传的目录 JSON
// 接受裸商品数组或携带 products 字段的信封对象，其余形态一律拒绝。
// 每个商品与规格逐字段清洗：缺失 id 重新生成，数值字段非法归零，
// 字符串字段回退到固定占位值。
func ParseCatalogImport(data []byte) ([]models.Product, error) {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return nil, ErrImportFormat
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		var envelope importEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Products) == 0 {
			return nil, ErrImportFormat
		}
		if err := json.Unmarshal(envelope.Products, &items); err != nil {
			return nil, ErrImportFormat
		}
	}

	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		products = append(products, sanitizeImportedProduct(item))
	}
	return products, nil
}

func sanitizeImportedProduct(item map[string]interface{}) models.Product {
	product := models.Product{
		ID:          coerceString(item["id"], ""),
		Name:        coerceString(item["name"], constants.ImportedProductName),
		Category:    coerceString(item["category"], constants.ImportedCategory),
		Description: coerceString(item["description"], ""),
		BasePrice:   coerceMoney(item["basePrice"]),
		Image:       coerceString(item["image"], ""),
		Remarks:     coerceString(item["remarks"], ""),
		AlertLimit:  coerceInt(item["alertLimit"]),
		SubProducts: []models.SubProduct{},
	}
	if product.ID == "" {
		product.ID = models.NewID()
	}
	if product.AlertLimit < 0 {
		product.AlertLimit = 0
	}

	subs, ok := item["subProducts"].([]interface{})
	if !ok {
		return product
	}
	for _, rawSub := range subs {
		subItem, ok := rawSub.(map[string]interface{})
		if !ok {
			continue
		}
		product.SubProducts = append(product.SubProducts, sanitizeImportedSubProduct(subItem))
	}
	return product
}

func sanitizeImportedSubProduct(item map[string]interface{}) models.SubProduct {
	sub := models.SubProduct{
		ID:          coerceString(item["id"], ""),
		SKU:         coerceString(item["sku"], constants.ImportedSKUPlaceholder),
		Name:        coerceString(item["name"], ""),
		Description: coerceString(item["description"], ""),
		Color:       coerceString(item["color"], constants.DefaultColor),
		Price:       coerceMoney(item["price"]),
		Quantity:    coerceInt(item["quantity"]),
		Weight:      coerceString(item["weight"], ""),
		Dimensions:  coerceString(item["dimensions"], ""),
		Image:       coerceString(item["image"], ""),
		Remarks:     coerceString(item["remarks"], ""),
	}
	if sub.ID == "" {
		sub.ID = models.NewID()
	}
	if sub.Quantity < 0 {
		sub.Quantity = 0
	}
	return sub
}

// coerceString 宽松取字符串（缺失或类型不符回退默认值）
func coerceString(value interface{}, fallback string) string {
	s, ok := value.(string)
	if !ok {
		return fallback
	}
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// coerceInt 宽松取整数（支持数字与数字字符串，非法归零）
func coerceInt(value interface{}) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// coerceMoney 宽松取金额（支持数字与数字字符串，非法归零）
func coerceMoney(value interface{}) models.Money {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return models.Money{}
		}
		return models.NewMoneyFromFloat(v)
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil && !d.IsNegative() {
			return models.NewMoneyFromDecimal(d)
		}
	}
	return models.Money{}
}
