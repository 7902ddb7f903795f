package service

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stockpilot/internal/constants"
	"github.com/stockpilot/internal/models"
)

func transferFixture() []models.Product {
	return []models.Product{
		{
			ID:         "p1",
			Name:       "陶瓷马克杯",
			Category:   "餐具",
			AlertLimit: 10,
			SubProducts: []models.SubProduct{
				{
					ID:       "s1",
					SKU:      "MUG-WHT",
					Color:    "白色",
					Price:    models.NewMoneyFromFloat(39.5),
					Quantity: 8,
					Remarks:  `含备注, 含逗号与"引号"`,
				},
			},
		},
		{
			ID:          "p2",
			Name:        "无规格商品",
			Category:    "杂项",
			AlertLimit:  5,
			SubProducts: []models.SubProduct{},
		},
	}
}

func TestBuildJSONBackup(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 20, 30, 0, time.UTC)
	data, filename, err := BuildJSONBackup(transferFixture(), now)
	if err != nil {
		t.Fatalf("build json backup failed: %v", err)
	}
	if filename != "inventory_backup_20260830_102030.json" {
		t.Fatalf("filename mismatch: %s", filename)
	}

	var decoded []models.Product
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("backup should be valid json: %v", err)
	}
	if len(decoded) != 2 || decoded[0].SubProducts[0].SKU != "MUG-WHT" {
		t.Fatalf("backup content mismatch: %+v", decoded)
	}
}

func TestBuildCSVExport(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 20, 30, 0, time.UTC)
	data, filename, err := BuildCSVExport(transferFixture(), now)
	if err != nil {
		t.Fatalf("build csv export failed: %v", err)
	}
	if filename != "inventory_export_20260830_102030.csv" {
		t.Fatalf("filename mismatch: %s", filename)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("exported csv should round-trip through a csv reader: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want header + 2 rows got %d", len(rows))
	}
	if rows[0][0] != "Product" || rows[0][8] != "Remarks" {
		t.Fatalf("header mismatch: %v", rows[0])
	}
	if rows[1][2] != "MUG-WHT" || rows[1][5] != "8" {
		t.Fatalf("variant row mismatch: %v", rows[1])
	}
	if rows[1][8] != `含备注, 含逗号与"引号"` {
		t.Fatalf("quoted field should survive round-trip, got %s", rows[1][8])
	}
	// 无规格商品输出占位行
	if rows[2][0] != "无规格商品" || rows[2][2] != "" || rows[2][5] != "" {
		t.Fatalf("zero-variant placeholder row mismatch: %v", rows[2])
	}
}

func TestParseCatalogImportBareArray(t *testing.T) {
	products, err := ParseCatalogImport([]byte(`[{"name":"X"}]`))
	if err != nil {
		t.Fatalf("bare array should parse: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("want 1 product got %d", len(products))
	}
	p := products[0]
	if p.Name != "X" {
		t.Fatalf("name want X got %s", p.Name)
	}
	if p.ID == "" {
		t.Fatalf("missing id should be generated")
	}
	if p.Category != constants.ImportedCategory {
		t.Fatalf("missing category should fall back, got %s", p.Category)
	}
	if p.SubProducts == nil || len(p.SubProducts) != 0 {
		t.Fatalf("sub products should be empty non-nil slice")
	}
}

func TestParseCatalogImportEnvelope(t *testing.T) {
	payload := `{"products":[{"name":"马克杯","subProducts":[{"sku":"MUG-1","quantity":"7","price":"12.5"}]}]}`
	products, err := ParseCatalogImport([]byte(payload))
	if err != nil {
		t.Fatalf("envelope should parse: %v", err)
	}
	if len(products) != 1 || len(products[0].SubProducts) != 1 {
		t.Fatalf("envelope content mismatch: %+v", products)
	}
	sub := products[0].SubProducts[0]
	if sub.Quantity != 7 {
		t.Fatalf("numeric string quantity should coerce, got %d", sub.Quantity)
	}
	if sub.Price.String() != "12.50" {
		t.Fatalf("numeric string price should coerce, got %s", sub.Price.String())
	}
}

func TestParseCatalogImportSanitizesBadFields(t *testing.T) {
	payload := `[{"name":123,"alertLimit":-3,"subProducts":[{"sku":null,"quantity":-5,"color":""}]}]`
	products, err := ParseCatalogImport([]byte(payload))
	if err != nil {
		t.Fatalf("tolerant parse failed: %v", err)
	}
	p := products[0]
	if p.Name != constants.ImportedProductName {
		t.Fatalf("non-string name should fall back, got %s", p.Name)
	}
	if p.AlertLimit != 0 {
		t.Fatalf("negative alert limit should clamp to 0, got %d", p.AlertLimit)
	}
	sub := p.SubProducts[0]
	if sub.SKU != constants.ImportedSKUPlaceholder {
		t.Fatalf("missing sku should use placeholder, got %s", sub.SKU)
	}
	if sub.Quantity != 0 {
		t.Fatalf("negative quantity should clamp to 0, got %d", sub.Quantity)
	}
	if sub.Color != constants.DefaultColor {
		t.Fatalf("empty color should fall back, got %s", sub.Color)
	}
}

func TestParseCatalogImportRejectsOtherShapes(t *testing.T) {
	cases := []string{"", "  ", "42", `"text"`, `{"items":[]}`, "{broken"}
	for _, payload := range cases {
		if _, err := ParseCatalogImport([]byte(payload)); !errors.Is(err, ErrImportFormat) {
			t.Fatalf("payload %q want ErrImportFormat got %v", payload, err)
		}
	}
}

func TestExportImportRoundtrip(t *testing.T) {
	data, _, err := BuildJSONBackup(transferFixture(), time.Now())
	if err != nil {
		t.Fatalf("build backup failed: %v", err)
	}
	products, err := ParseCatalogImport(data)
	if err != nil {
		t.Fatalf("reimport failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("roundtrip product count mismatch: %d", len(products))
	}
	if products[0].SubProducts[0].SKU != "MUG-WHT" || products[0].SubProducts[0].Quantity != 8 {
		t.Fatalf("roundtrip variant mismatch: %+v", products[0].SubProducts[0])
	}
}
